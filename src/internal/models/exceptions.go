package models

import "errors"

var (
	ErrConfigMissingCredentials = errors.New("target site credentials are not configured")
	ErrConfigMissingLoginUrl    = errors.New("target site login url is not configured")
	ErrConfigMissingDatabase    = errors.New("database connection url is not configured")
)

var (
	ErrLoginFailed     = errors.New("login against target site failed")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

var (
	ErrStoreQuery  = errors.New("session store query error")
	ErrStoreInsert = errors.New("session store insert error")
	ErrStoreUpdate = errors.New("session store update error")
)

var (
	ErrRedisGet = errors.New("redis get error")
	ErrRedisSet = errors.New("redis set error")
	ErrRedisDel = errors.New("redis delete error")
)
