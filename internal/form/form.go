package form

import "strings"

// Field is a single form input.
type Field struct {
	Name     string
	Label    string
	Value    string
	Required bool
	Invalid  bool
}

// Form is an ordered set of fields.
type Form struct {
	Title  string
	Fields []Field
}

// New builds a form from fields.
func New(title string, fields ...Field) *Form {
	return &Form{Title: title, Fields: fields}
}

// Validate marks every required field that is blank after trimming as
// invalid, clears the marker on the rest, and reports whether all required
// fields were filled.
func Validate(f *Form) bool {
	if f == nil {
		return true
	}
	valid := true
	for i := range f.Fields {
		field := &f.Fields[i]
		if !field.Required {
			continue
		}
		if strings.TrimSpace(field.Value) == "" {
			field.Invalid = true
			valid = false
			continue
		}
		field.Invalid = false
	}
	return valid
}

// Value returns the value of the named field.
func (f *Form) Value(name string) string {
	if field := f.Field(name); field != nil {
		return field.Value
	}
	return ""
}

// Set assigns a value to the named field.
func (f *Form) Set(name, value string) {
	if field := f.Field(name); field != nil {
		field.Value = value
	}
}

// Field returns the named field or nil.
func (f *Form) Field(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// InvalidFields lists the names of fields carrying the invalid marker.
func (f *Form) InvalidFields() []string {
	var names []string
	for _, field := range f.Fields {
		if field.Invalid {
			names = append(names, field.Name)
		}
	}
	return names
}
