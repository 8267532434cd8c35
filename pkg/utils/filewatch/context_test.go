package filewatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mentorlink/mentorlink/pkg/utils/filewatch"
)

func TestUntilModifyContext(t *testing.T) {

	for name, modify := range map[string]func(t *testing.T, file string){
		"When the watched file is written, it should cancel the context": func(t *testing.T, file string) {
			if err := os.WriteFile(file, []byte("content"), 0644); err != nil {
				t.Fatal(err)
			}
		},
		"When the watched file is removed, it should cancel the context": func(t *testing.T, file string) {
			if err := os.Remove(file); err != nil {
				t.Fatal(err)
			}
		},
		"When the watched file is renamed, it should cancel the context": func(t *testing.T, file string) {
			if err := os.Rename(file, file+".bak"); err != nil {
				t.Fatal(err)
			}
		},
		"When the watched file changes mode, it should cancel the context": func(t *testing.T, file string) {
			// change twice so the test passes whatever the umask left.
			if err := os.Chmod(file, 0o700); err != nil {
				t.Fatal(err)
			}
			if err := os.Chmod(file, 0o644); err != nil {
				t.Fatal(err)
			}
		},
	} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(file, []byte("port: 8080"), 0644); err != nil {
				t.Fatal(err)
			}

			ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), file)
			if err != nil {
				t.Fatal(err)
			}
			defer cancel()

			if err := ctx.Err(); err != nil {
				t.Fatalf("canceled before any modification: %v", err)
			}

			modify(t, file)

			select {
			case <-ctx.Done():
			case <-time.After(3 * time.Second):
				t.Fatal("the context should be canceled by the modification")
			}
		})
	}

	t.Run("When the target does not exist, it should fail to start watching", func(t *testing.T) {
		_, _, err := filewatch.UntilModifyContext(
			context.Background(), filepath.Join(t.TempDir(), "no-such-file"),
		)
		if err == nil {
			t.Fatal("an error is expected")
		}
	})
}
