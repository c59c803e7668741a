package bench_test

import (
	"database/sql"
	"math/rand"
	"path/filepath"
	"testing"

	segments "github.com/luhtfiimanal/go-cache-segments"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const historySize = 1000

func randomHistory(n int) []segments.Range[int64] {
	rnd := rand.New(rand.NewSource(42))
	out := make([]segments.Range[int64], n)
	for i := range out {
		from := rnd.Int63n(1_000_000)
		out[i] = segments.Range[int64]{From: segments.At(from), To: segments.At(from + rnd.Int63n(500) + 1)}
	}
	return out
}

func quietLogOptions() segments.LogOptions {
	opts := segments.DefaultLogOptions()
	opts.SyncOnAppend = false
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	opts.Logger = logger
	return opts
}

// BenchmarkAppend membandingkan penulisan history ke HistoryLog vs tabel SQLite.
func BenchmarkAppend(b *testing.B) {
	history := randomHistory(historySize)

	b.Run("historylog", func(bb *testing.B) {
		l, err := segments.OpenHistoryLogWithOptions[int64](filepath.Join(bb.TempDir(), "segments.log"), segments.Int64Codec{}, quietLogOptions())
		if err != nil {
			bb.Fatalf("open log: %v", err)
		}
		defer l.Close()
		bb.ResetTimer()
		for i := 0; i < bb.N; i++ {
			if err := l.Append(history[i%historySize]); err != nil {
				bb.Fatalf("append: %v", err)
			}
		}
	})

	b.Run("sqlite", func(bb *testing.B) {
		db := openHistoryDB(bb)
		defer db.Close()
		bb.ResetTimer()
		for i := 0; i < bb.N; i++ {
			r := history[i%historySize]
			if _, err := db.Exec(`INSERT INTO history (from_ns, to_ns) VALUES (?, ?)`, r.From.Value, r.To.Value); err != nil {
				bb.Fatalf("sqlite insert: %v", err)
			}
		}
	})
}

// BenchmarkLoad membangun ulang SegmentMap dari history yang tersimpan.
func BenchmarkLoad(b *testing.B) {
	history := randomHistory(historySize)

	b.Run("historylog", func(bb *testing.B) {
		l, err := segments.OpenHistoryLogWithOptions[int64](filepath.Join(bb.TempDir(), "segments.log"), segments.Int64Codec{}, quietLogOptions())
		if err != nil {
			bb.Fatalf("open log: %v", err)
		}
		defer l.Close()
		for _, r := range history {
			if err := l.Append(r); err != nil {
				bb.Fatalf("append: %v", err)
			}
		}
		bb.ResetTimer()
		for i := 0; i < bb.N; i++ {
			if _, err := l.Load(); err != nil {
				bb.Fatalf("load: %v", err)
			}
		}
	})

	b.Run("sqlite", func(bb *testing.B) {
		db := openHistoryDB(bb)
		defer db.Close()
		for _, r := range history {
			if _, err := db.Exec(`INSERT INTO history (from_ns, to_ns) VALUES (?, ?)`, r.From.Value, r.To.Value); err != nil {
				bb.Fatalf("sqlite insert: %v", err)
			}
		}
		bb.ResetTimer()
		for i := 0; i < bb.N; i++ {
			rows, err := db.Query(`SELECT from_ns, to_ns FROM history ORDER BY seq`)
			if err != nil {
				bb.Fatalf("sqlite select: %v", err)
			}
			loaded := make([]segments.Range[int64], 0, historySize)
			for rows.Next() {
				var from, to int64
				if err := rows.Scan(&from, &to); err != nil {
					bb.Fatalf("scan: %v", err)
				}
				loaded = append(loaded, segments.Range[int64]{From: segments.At(from), To: segments.At(to)})
			}
			rows.Close()
			if _, err := segments.Replay(loaded); err != nil {
				bb.Fatalf("replay: %v", err)
			}
		}
	})
}

func openHistoryDB(b *testing.B) *sql.DB {
	db, err := sql.Open("sqlite", filepath.Join(b.TempDir(), "history.db"))
	if err != nil {
		b.Fatalf("open sqlite: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE history (seq INTEGER PRIMARY KEY AUTOINCREMENT, from_ns INTEGER, to_ns INTEGER)`); err != nil {
		b.Fatalf("create table: %v", err)
	}
	return db
}
