package discount

// CategorySet is a read-only set of category names.
type CategorySet interface {
	Contains(category string) bool
	Size() int
}

type mapCategorySet struct {
	categories map[string]struct{}
}

// NewCategorySet builds a set from the given categories. Duplicates collapse.
func NewCategorySet(categories []string) CategorySet {
	s := &mapCategorySet{
		categories: make(map[string]struct{}, len(categories)),
	}
	for _, c := range categories {
		s.categories[c] = struct{}{}
	}
	return s
}

func (s *mapCategorySet) Contains(category string) bool {
	_, ok := s.categories[category]
	return ok
}

func (s *mapCategorySet) Size() int {
	return len(s.categories)
}
