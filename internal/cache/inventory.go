package cache

import "time"

const (
	TagsKey = "tags"
	TagsTTL = 10 * time.Minute
)
