package data_structures

type ISet interface {
	Add(interface{}) bool
	Delete(interface{}) bool
	Has(interface{}) bool
	GetAll() []interface{}
	Clear()
	Size() int
}

type Set struct {
	m map[interface{}]bool
}

func NewSet() ISet {
	return &Set{make(map[interface{}]bool)}
}

func (s *Set) Add(data interface{}) bool {
	if s.m[data] {
		return false
	}
	s.m[data] = true
	return true
}

func (s *Set) Delete(data interface{}) bool {
	if s.m[data] {
		delete(s.m, data)
		return true
	}
	return false
}

func (s *Set) Has(data interface{}) bool {
	return s.m[data]
}

func (s *Set) Clear() {
	for k := range s.m {
		delete(s.m, k)
	}
}

func (s *Set) GetAll() []interface{} {
	data := make([]interface{}, 0, len(s.m))
	for k := range s.m {
		data = append(data, k)
	}
	return data
}

func (s *Set) Size() int {
	return len(s.m)
}
