// Code generated by hand for testing. DO NOT EDIT.

package a

func (c *Cache) Snapshot() map[string]int {
	return c.entries
}
