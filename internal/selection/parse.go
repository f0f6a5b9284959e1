package selection

import "github.com/roach88/crimpfit/internal/catalog"

// DefaultClass is used when a label carries no class.
const DefaultClass catalog.ConductorClass = "Class 2"

// ParseConductorClass extracts "Class N" from a display label such as
// "Class 2Multi-Stranded". Labels without a class yield DefaultClass.
func ParseConductorClass(label string) catalog.ConductorClass {
	if c, ok := catalog.FindClass(label); ok {
		return c
	}
	return DefaultClass
}
