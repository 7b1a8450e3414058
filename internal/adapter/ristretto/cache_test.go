package ristretto

import (
	"bytes"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := New(1 << 20)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	c.Set("writing/summarize.md", []byte("body"))
	c.c.Wait() // ristretto admits asynchronously

	got, ok := c.Get("writing/summarize.md")
	if !ok || !bytes.Equal(got, []byte("body")) {
		t.Fatalf("get = %q, %v", got, ok)
	}

	c.Delete("writing/summarize.md")
	c.c.Wait()
	if _, ok := c.Get("writing/summarize.md"); ok {
		t.Fatal("entry survived delete")
	}
}

func TestCacheMissingKey(t *testing.T) {
	c, err := New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, ok := c.Get("absent"); ok {
		t.Fatal("unexpected hit for absent key")
	}
}
