package biomarker

import "github.com/laborator/rezulta/internal/romanian"

// KnowledgeBase is the static catalogue of canonical biomarker names and
// their known spellings. Lookup keys are diacritic-folded and lowercased,
// so "Hemoglobină" and "HEMOGLOBINA" resolve identically.
type KnowledgeBase struct {
	// byAlias maps a folded alias to its canonical name.
	byAlias map[string]string
	// keys holds the folded aliases in insertion order for fuzzy scans.
	keys []string
}

// NewKnowledgeBase builds a knowledge base from canonical-name → aliases
// entries. The canonical name itself always resolves.
func NewKnowledgeBase(entries map[string][]string) *KnowledgeBase {
	kb := &KnowledgeBase{byAlias: make(map[string]string)}
	for canonical, aliases := range entries {
		kb.add(canonical, canonical)
		for _, alias := range aliases {
			kb.add(alias, canonical)
		}
	}
	return kb
}

func (kb *KnowledgeBase) add(alias, canonical string) {
	folded := romanian.Fold(alias)
	if _, ok := kb.byAlias[folded]; ok {
		return
	}
	kb.byAlias[folded] = canonical
	kb.keys = append(kb.keys, folded)
}

// Lookup returns the canonical name for a folded alias, if known.
func (kb *KnowledgeBase) Lookup(folded string) (string, bool) {
	canonical, ok := kb.byAlias[folded]
	return canonical, ok
}

// Keys returns the folded alias keys for similarity scans.
func (kb *KnowledgeBase) Keys() []string {
	return kb.keys
}

// Len returns the number of known aliases.
func (kb *KnowledgeBase) Len() int {
	return len(kb.keys)
}

// DefaultKnowledgeBase covers the biomarker families the known providers
// print: hematology, leukocyte formula, biochemistry, lipids, liver and
// kidney panels, thyroid hormones, and common serology. Extend per
// deployment via NewKnowledgeBase.
func DefaultKnowledgeBase() *KnowledgeBase {
	return NewKnowledgeBase(map[string][]string{
		// Hematology.
		"Hemoglobina":   {"hemoglobin", "hgb", "hb"},
		"Hematocrit":    {"hct", "htc"},
		"Eritrocite":    {"red blood cells", "rbc", "hematii", "numar eritrocite"},
		"Leucocite":     {"white blood cells", "wbc", "numar leucocite"},
		"Trombocite":    {"platelets", "plt", "numar trombocite"},
		"VEM":           {"mcv", "volum eritrocitar mediu"},
		"HEM":           {"mch", "hemoglobina eritrocitara medie"},
		"CHEM":          {"mchc", "concentratia medie a hemoglobinei"},
		"RDW":           {"rdw-cv", "rdw-sd", "largimea distributiei eritrocitare"},
		"VSH":           {"esr", "viteza de sedimentare a hematiilor"},
		"Reticulocite":  {"reticulocytes", "ret"},
		"VTM":           {"mpv", "volum trombocitar mediu"},

		// Leukocyte formula.
		"Neutrofile": {"neutrophils", "neu", "neutrofile segmentate"},
		"Limfocite":  {"lymphocytes", "lym", "limf"},
		"Monocite":   {"monocytes", "mono"},
		"Eozinofile": {"eosinophils", "eos"},
		"Bazofile":   {"basophils", "baso"},

		// Biochemistry.
		"Glucoza":          {"glucose", "glicemie", "glucoza serica"},
		"Creatinina":       {"creatinine", "creatinina serica"},
		"Uree":             {"urea", "uree serica", "bun"},
		"Acid uric":        {"uric acid", "acid uric seric"},
		"Sodiu":            {"sodium", "na", "natriu"},
		"Potasiu":          {"potassium", "k", "kaliu"},
		"Clor":             {"chloride", "cl"},
		"Calciu":           {"calcium", "ca", "calciu total", "calciu seric"},
		"Calciu ionic":     {"ionized calcium"},
		"Magneziu":         {"magnesium", "mg seric"},
		"Fier":             {"iron", "fier seric", "sideremie"},
		"Feritina":         {"ferritin", "feritina serica"},
		"Transferina":      {"transferrin"},
		"Bilirubina totala": {"total bilirubin", "bilirubina"},
		"Bilirubina directa": {"direct bilirubin", "bilirubina conjugata"},
		"Proteine totale":  {"total protein", "proteine serice"},
		"Albumina":         {"albumin", "albumina serica"},
		"Amilaza":          {"amylase", "amilaza serica"},
		"Lipaza":           {"lipase"},

		// Lipids.
		"Colesterol total": {"total cholesterol", "colesterol", "colesterol seric"},
		"LDL colesterol":   {"ldl", "ldl cholesterol", "ldl-colesterol"},
		"HDL colesterol":   {"hdl", "hdl cholesterol", "hdl-colesterol"},
		"Trigliceride":     {"triglycerides", "trigliceride serice"},

		// Liver.
		"TGP": {"alt", "alat", "alanin aminotransferaza", "sgpt"},
		"TGO": {"ast", "asat", "aspartat aminotransferaza", "sgot"},
		"GGT": {"gama-glutamiltransferaza", "gamma gt", "gama gt"},
		"Fosfataza alcalina": {"alkaline phosphatase", "alp", "fal"},

		// Thyroid and hormones.
		"TSH":       {"hormon de stimulare tiroidiana", "tirotropina"},
		"FT4":       {"free t4", "tiroxina libera", "t4 liber"},
		"FT3":       {"free t3", "triiodotironina libera", "t3 liber"},
		"ATPO":      {"anti-tpo", "anticorpi anti-tiroidperoxidaza"},
		"Cortizol":  {"cortisol", "cortizol seric"},
		"Vitamina D": {"25-oh vitamina d", "vitamin d", "25-hidroxivitamina d"},
		"Vitamina B12": {"vitamin b12", "cobalamina"},
		"Acid folic": {"folic acid", "folat"},

		// Inflammation and coagulation.
		"Proteina C reactiva": {"crp", "c-reactive protein", "pcr"},
		"Fibrinogen":          {"fibrinogen plasmatic"},
		"INR":                 {"international normalized ratio"},
		"APTT":                {"aptt"},
		"D-dimeri":            {"d-dimer", "ddimer"},

		// Glyco.
		"Hemoglobina glicozilata": {"hba1c", "hemoglobina glicata", "glycated hemoglobin"},
		"Insulina":                {"insulin", "insulinemie"},

		// Urine / serology.
		"Examen sumar de urina": {"urinalysis", "sumar urina"},
		"Helicobacter pylori":   {"h. pylori", "h pylori antigen"},
		"Antigen HBs":           {"hbs", "aghbs", "hepatitis b surface antigen"},
		"Anticorpi anti-HCV":    {"hcv", "anti-hcv"},
	})
}
