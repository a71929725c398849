package roles

import (
	"defect-cost/core/types"
)

// Vocabulary is the static role→department membership list. The comparison
// engine needs it because a role may be absent from one period's data and
// still needs a home department. Immutable after construction; build a new
// one to change the lists.
type Vocabulary struct {
	production map[string]struct{}
	order      map[types.Department][]string
}

// NewVocabulary builds a vocabulary from explicit role lists.
// A role on the production list maps to Production; every other role,
// listed or not, maps to Office.
func NewVocabulary(production, office []string) *Vocabulary {
	v := &Vocabulary{
		production: make(map[string]struct{}, len(production)),
		order: map[types.Department][]string{
			types.DepartmentProduction: append([]string(nil), production...),
			types.DepartmentOffice:     append([]string(nil), office...),
		},
	}
	for _, r := range production {
		v.production[r] = struct{}{}
	}
	return v
}

// Default returns the built-in vocabulary, matching the workshop's
// nonconformance report sheet.
func Default() *Vocabulary {
	return NewVocabulary(
		[]string{"Резка", "Гибка", "Сборка", "Покраска", "Склад"},
		[]string{"Менеджер", "Расчётчик", "Конструктор", "Программист"},
	)
}

// DepartmentOf returns the home department for a role. Roles not on the
// production list fall back to Office, including roles missing from both
// lists.
func (v *Vocabulary) DepartmentOf(role string) types.Department {
	if _, ok := v.production[role]; ok {
		return types.DepartmentProduction
	}
	return types.DepartmentOffice
}

// Roles returns the listed roles for a department, in list order
func (v *Vocabulary) Roles(d types.Department) []string {
	return append([]string(nil), v.order[d]...)
}
