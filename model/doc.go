// Package model defines the shared data types for lab report extraction:
// positioned words as delivered by the PDF text layer, table rows assembled
// from them, and the finalized test result records handed to the caller.
package model
