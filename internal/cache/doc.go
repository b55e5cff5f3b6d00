// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, image.Image](64)
//	c.Set("prize.png", img)
//	img, ok := c.Get("prize.png")
//
// LRU is safe for concurrent use and must not be copied after creation.
package cache
