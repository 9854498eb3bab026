package redis

import "fmt"

// keys builds the Redis keys of one storage instance
type keys struct {
	prefix string
}

// sequence returns the key of the INCR counter of a resource
func (k keys) sequence(resourceUID string) string {
	return fmt.Sprintf("%s:seq:%s", k.prefix, resourceUID)
}

// entries returns the key of the HASH entryUID -> entry JSON
func (k keys) entries(resourceUID string) string {
	return fmt.Sprintf("%s:entries:%s", k.prefix, resourceUID)
}

// order returns the key of the ZSET of entry uids scored by sequence
func (k keys) order(resourceUID string) string {
	return fmt.Sprintf("%s:order:%s", k.prefix, resourceUID)
}

// resources returns the key of the SET of known resource uids
func (k keys) resources() string {
	return fmt.Sprintf("%s:resources", k.prefix)
}
