package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	panel "github.com/goliatone/go-panel"
	"github.com/goliatone/go-panel/content"
	"github.com/goliatone/go-panel/internal/di"
	"github.com/goliatone/go-panel/internal/identity"
	"github.com/goliatone/go-panel/internal/profiles"
)

type staticAuth struct {
	userID string
}

func (a staticAuth) CurrentUserID(context.Context) (string, error) {
	return a.userID, nil
}

func main() {
	ctx := context.Background()

	dsn := os.Getenv("PANEL_DB")
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := openDatabase(dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := runMigrations(ctx, db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	adminID := identity.ProfileUUID("admin@example.com")
	admin := &profiles.Profile{
		ID:        adminID,
		Email:     "admin@example.com",
		Role:      profiles.RoleSuperadmin,
		CreatedAt: time.Now(),
	}
	if _, err := db.NewInsert().Model(admin).Exec(ctx); err != nil {
		log.Fatalf("seed profile: %v", err)
	}

	cfg := panel.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Commands.Enabled = true

	module, err := panel.New(cfg,
		di.WithBunDB(db),
		di.WithAuthProvider(staticAuth{userID: adminID.String()}),
	)
	if err != nil {
		log.Fatalf("initialise panel: %v", err)
	}
	defer module.Shutdown()

	contentSvc := module.Content()

	created, err := contentSvc.Create(ctx, content.CreateRequest{
		Kind: content.KindNews,
		Primary: content.Draft{
			Title:    "Community Center Opens",
			Slug:     "community-center-opens",
			Excerpt:  "The new community center opened its doors this weekend.",
			Content:  "Full coverage of the opening ceremony.",
			Category: "community",
		},
		Secondary: content.Draft{
			Title:   "İcma Mərkəzi Açıldı",
			Excerpt: "Yeni icma mərkəzi bu həftə sonu qapılarını açdı.",
		},
		Publish: true,
		ActorID: adminID,
	})
	if err != nil {
		log.Fatalf("create news: %v", err)
	}
	fmt.Printf("created %s (%s), secondary %s via %s\n",
		created.Primary.Slug, created.Transition, created.Secondary.Slug, created.SecondaryOp)

	updated, err := contentSvc.Update(ctx, content.UpdateRequest{
		ID:   created.Primary.ID,
		Kind: content.KindNews,
		Primary: content.Draft{
			Title:    "Community Center Opens",
			Slug:     "community-center-opens",
			Excerpt:  "The new community center opened its doors this weekend.",
			Content:  "Full coverage of the opening ceremony, with photos.",
			Category: "community",
		},
		Secondary: content.Draft{
			Title:   "İcma Mərkəzi Açıldı",
			Content: "Açılış mərasiminin tam icmalı.",
		},
		Publish: false,
		ActorID: adminID,
	})
	if err != nil {
		log.Fatalf("update news: %v", err)
	}
	fmt.Printf("updated %s (%s), secondary op %s\n",
		updated.Primary.Slug, updated.Transition, updated.SecondaryOp)

	eventDate := time.Now().Add(72 * time.Hour)
	if _, err := contentSvc.Create(ctx, content.CreateRequest{
		Kind: content.KindEvents,
		Primary: content.Draft{
			Title:     "Autumn Book Fair",
			Excerpt:   "Three days of readings and signings.",
			Location:  "Central Library",
			EventDate: &eventDate,
		},
		Publish: true,
		ActorID: adminID,
	}); err != nil {
		log.Fatalf("create event: %v", err)
	}

	overview, err := module.Dashboard().Overview(ctx)
	if err != nil {
		log.Fatalf("dashboard overview: %v", err)
	}
	encoded, _ := json.MarshalIndent(overview, "", "  ")
	fmt.Printf("dashboard overview:\n%s\n", encoded)

	// Audit delivery is fire-and-forget; flush before reading the trail.
	module.Audit().Flush()
	events, err := module.AuditLog().List(ctx)
	if err != nil {
		log.Fatalf("list audit events: %v", err)
	}
	for _, event := range events {
		fmt.Printf("audit: %s %s %s\n", event.OccurredAt.Format(time.RFC3339), event.Action, event.EntityID)
	}

	for _, section := range module.Navigation(profiles.RoleSuperadmin) {
		fmt.Printf("nav section %s (%d items)\n", section.Title, len(section.Items))
	}
}

// openDatabase picks the bun dialect from the DSN so the same binary can run
// against the sqlite default or a hosted postgres.
func openDatabase(dsn string) (*bun.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	}

	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	entries, err := fs.ReadDir(panel.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := fs.ReadFile(panel.GetMigrationsFS(), "data/sql/migrations/"+name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}
