package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(50 * time.Millisecond)
	var slept time.Duration
	th.sleep = func(d time.Duration) {
		slept += d
		time.Sleep(d)
	}
	th.wait()
	if slept != 0 {
		t.Fatalf("expected first wait to return immediately, slept %s", slept)
	}
	th.wait()
	if slept == 0 {
		t.Fatalf("expected second wait to sleep")
	}
}

func TestThrottleDisabled(t *testing.T) {
	var th *throttle
	th.wait()
	newThrottle(0).wait()
	newThrottle(-time.Second).wait()
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	if err := os.WriteFile(path, []byte("items:\n  - label: one\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte("title: Fresh\nitems:\n  - label: two\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case evt := <-w.Events():
		if evt.Err != nil {
			t.Fatalf("unexpected reload error: %v", evt.Err)
		}
		if evt.Definition.Title != "Fresh" || evt.Definition.Items[0].Label != "two" {
			t.Fatalf("unexpected definition %#v", evt.Definition)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	if err := os.WriteFile(path, []byte("items:\n  - label: one\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	select {
	case evt := <-w.Events():
		t.Fatalf("unexpected event %#v", evt)
	case <-time.After(200 * time.Millisecond):
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected events channel closed after Wait")
	}
}

func TestWatcherReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	if err := os.WriteFile(path, []byte("items:\n  - label: one\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if err := os.WriteFile(path, []byte("title: nothing\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	select {
	case evt := <-w.Events():
		if evt.Err == nil {
			t.Fatalf("expected a parse error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}
