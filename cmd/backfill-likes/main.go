// backfill-likes recomputes blog.posts.likes from the blog.likes rows.
//
// The counter on posts is denormalized for cheap list rendering; if it ever
// drifts (manual row surgery, an interrupted toggle before transactions were
// introduced), this command resets it to the true count.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// CLI flags
var (
	dsn         = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun      = flag.Bool("dry-run", false, "Report drifted counters; no DB writes")
	confirm     = flag.Bool("confirm", false, "Required to perform the update")
	advisoryKey = flag.Int64("advisory-lock", 0, "Optional Postgres advisory lock key. 0 = disabled")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	drifted, err := countDrifted(ctx, db)
	if err != nil {
		fatalf("count drifted: %v", err)
	}
	fmt.Printf("Posts with drifted like counters: %d\n", drifted)

	if *dryRun {
		fmt.Println("Dry run complete. No changes made.")
		return
	}
	if drifted == 0 {
		fmt.Println("Nothing to do.")
		return
	}
	if !*confirm {
		fatalf("Refusing to run without --confirm. Add --dry-run to preview.")
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	// Optional advisory lock to avoid concurrent runs
	if *advisoryKey != 0 {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, *advisoryKey); err != nil {
			fatalf("advisory lock: %v", err)
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE blog.posts p
		SET likes = COALESCE(c.n, 0)
		FROM (SELECT post_id, COUNT(*) AS n FROM blog.likes GROUP BY post_id) c
		WHERE c.post_id = p.post_id AND p.likes <> c.n`)
	if err != nil {
		fatalf("update counted posts: %v", err)
	}
	updated, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, `
		UPDATE blog.posts p
		SET likes = 0
		WHERE likes <> 0
		  AND NOT EXISTS (SELECT 1 FROM blog.likes l WHERE l.post_id = p.post_id)`)
	if err != nil {
		fatalf("zero orphaned counters: %v", err)
	}
	zeroed, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}

	fmt.Printf("Done. Updated %d counters, zeroed %d.\n", updated, zeroed)
}

func countDrifted(ctx context.Context, db *sql.DB) (int64, error) {
	var n int64
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM blog.posts p
		LEFT JOIN (SELECT post_id, COUNT(*) AS n FROM blog.likes GROUP BY post_id) c
		  ON c.post_id = p.post_id
		WHERE p.likes <> COALESCE(c.n, 0)`).Scan(&n)
	return n, err
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
