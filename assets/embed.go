// assets/embed.go
//
// Files compiled into the binary: the default word list and the SQL
// migrations applied at startup.

package assets

import (
	"bufio"
	"embed"
	"io"
	"io/fs"
	"strings"
)

//go:embed palabras.txt migrations/*.sql
var FS embed.FS

// Words returns the embedded word list as raw lines, comments and blanks removed.
func Words() ([]string, error) {
	f, err := FS.Open("palabras.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// ReadLines splits r into trimmed lines, skipping blanks and # comments.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// Migrations exposes the migrations directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "migrations")
}
