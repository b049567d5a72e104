package domain

// RawRecord is one parsed row of an uploaded report, keyed by the header
// cell of each column exactly as it appeared in the file. Affiliate
// networks have shipped several generations of export formats, so header
// spellings are unpredictable; resolution against canonical field names
// happens in the reconcile package, not here.
type RawRecord map[string]string
