package framework

// functionUidGenerator hands out a strictly increasing sequence of integers
// used to disambiguate generated function names within one registered
// class (sdf_<class>_<uid>). Unlike objects.UidGenerator it never reuses a
// value: generated function names are never freed, only ever added to.
type functionUidGenerator struct {
	next uint64
}

// Next returns the next value in the sequence, starting at 1.
func (g *functionUidGenerator) Next() uint64 {
	g.next++
	return g.next
}
