package state

import (
	"sync"
	"testing"
	"time"
)

func TestStore_ZeroValueIsUnprobed(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.Probed {
		t.Fatal("Probed = true, want false before any update")
	}
	if snap.Installed {
		t.Fatal("Installed = true, want false before any update")
	}
}

func TestStore_UpdateAndSnapshot(t *testing.T) {
	var s Store
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	s.Update(true, "/app/client", at)

	snap := s.Snapshot()
	if !snap.Probed || !snap.Installed {
		t.Fatalf("snapshot = %#v, want probed and installed", snap)
	}
	if snap.ClientPath != "/app/client" {
		t.Fatalf("ClientPath = %q, want /app/client", snap.ClientPath)
	}
	if !snap.LastChecked.Equal(at) {
		t.Fatalf("LastChecked = %v, want %v", snap.LastChecked, at)
	}
}

func TestStore_LatestUpdateWins(t *testing.T) {
	var s Store
	first := time.Now()
	second := first.Add(time.Second)

	s.Update(true, "c", first)
	s.Update(false, "c", second)

	snap := s.Snapshot()
	if snap.Installed {
		t.Fatal("Installed = true, want false after the later probe")
	}
	if !snap.LastChecked.Equal(second) {
		t.Fatalf("LastChecked = %v, want %v", snap.LastChecked, second)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	var s Store
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Update((i+j)%2 == 0, "c", time.Now())
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	if !s.Snapshot().Probed {
		t.Fatal("Probed = false after concurrent updates")
	}
}
