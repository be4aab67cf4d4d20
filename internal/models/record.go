package models

// Record is one untyped document in a progress store. Records keep whatever
// fields they were imported with; only the key is interpreted.
type Record map[string]interface{}

// Key returns the record's store key, or "" when missing or not a string
func (r Record) Key() string {
	key, _ := r["key"].(string)
	return key
}
