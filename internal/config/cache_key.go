package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session JTI.
func (r *CacheKeyStruct) UserSessionKey(email string) string {
	return fmt.Sprintf("login:%s", email)
}

// SubmissionFeedChannel returns the Redis PubSub channel carrying newly
// persisted submissions for the admin live feed.
func (r *CacheKeyStruct) SubmissionFeedChannel() string {
	return "submissions:feed"
}

var CacheKey = NewCacheKeyStruct()
