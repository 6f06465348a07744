package emitter

// clearAll deletes every entry of m in place. References to m held elsewhere observe an empty map.
func clearAll[M ~map[K]V, K comparable, V any](m M) {
	clear(m)
}
