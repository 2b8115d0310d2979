package cache_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/lrucache/cache"
)

func ExampleNew() {
	c, err := cache.New(cache.Config[string, int]{
		MaxSize: 2,
		OnEntryEvicted: func(e cache.EvictedEntry[string, int]) {
			fmt.Println("evicted:", e.Key, "expired:", e.IsExpired)
		},
	})
	if err != nil {
		panic(err)
	}

	_ = c.Set("a", 1)
	_ = c.Set("b", 2)
	c.Get("a")
	_ = c.Set("c", 3)

	fmt.Println("keys:", c.Keys())
	// Output:
	// evicted: b expired: false
	// keys: [c a]
}

func ExampleNew_invalid() {
	_, err := cache.New(cache.Config[string, int]{MaxSize: 0})
	fmt.Println(err)
	fmt.Println(errors.Is(err, cache.ErrInvalidArgument))
	// Output:
	// cache: invalid argument: max size must be a positive integer
	// true
}

func ExampleLRU_Peek() {
	c, _ := cache.New(cache.Config[string, string]{MaxSize: 2})
	_ = c.Set("a", "first")
	_ = c.Set("b", "second")

	v, _ := c.Peek("a")
	fmt.Println(v)

	_ = c.Set("c", "third")
	fmt.Println("a present:", c.Has("a"))
	// Output:
	// first
	// a present: false
}

func ExampleLRU_Set_clone() {
	c, _ := cache.New(cache.Config[string, map[string]int]{MaxSize: 1, Clone: true})

	counts := map[string]int{"x": 1}
	_ = c.Set("counts", counts)
	counts["x"] = 100

	got, _ := c.Get("counts")
	fmt.Println(got["x"])
	// Output:
	// 1
}

func ExampleLRU_Set_expiration() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c, _ := cache.New(cache.Config[string, string]{
		MaxSize: 1,
		Clock:   func() time.Time { return now },
	})

	_ = c.Set("session", "token", cache.WithTTL(time.Minute))
	fmt.Println(c.Has("session"))

	now = now.Add(time.Minute)
	fmt.Println(c.Has("session"))

	err := c.Set("session", "token", cache.WithTTLMillis(0))
	fmt.Println(err)
	// Output:
	// true
	// false
	// cache: invalid argument: entry expiration must either be null (no expiry) or greater than 0
}

func ExampleNewMemoryCache() {
	c, err := cache.NewMemoryCache(cache.DefaultPolicy())
	if err != nil {
		panic(err)
	}
	ctx := context.Background()

	_ = c.Set(ctx, "my-key", []byte("hello"), 5*time.Minute)

	value, ok := c.Get(ctx, "my-key")
	if ok {
		fmt.Println("Value:", string(value))
	}
	// Output:
	// Value: hello
}

func ExampleMemoizer_Load() {
	c, _ := cache.NewMemoryCache(cache.DefaultPolicy())
	m, _ := cache.NewMemoizer(c, nil, cache.DefaultPolicy())
	ctx := context.Background()

	load := func(context.Context) ([]byte, error) {
		fmt.Println("loading")
		return []byte("result"), nil
	}

	for range 2 {
		v, _ := m.Load(ctx, "search", map[string]string{"q": "lru"}, load)
		fmt.Println(string(v))
	}
	// Output:
	// loading
	// result
	// result
}
