/*
Package cache provides the store used to memoize name lookups. It should not be
of any concern to the callee where the store is, simply that it honours Get,
Set, Delete and Clear and that stale entries are never returned.

The default store is an in-process map bounded by a maximum entry count and a
maximum age. When full, the oldest insertion is evicted first (FIFO); reading
an entry never refreshes its position. Expired entries are removed when they
are next read, or by Sweep if a sweep job has been scheduled.
*/
package cache
