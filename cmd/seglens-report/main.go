package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/seglens/pkg/seglens"
	"github.com/cognicore/seglens/pkg/seglens/config"
	"github.com/cognicore/seglens/pkg/seglens/ledger"
	"github.com/cognicore/seglens/pkg/seglens/review"
	"github.com/cognicore/seglens/pkg/seglens/store/sqlite"
)

func main() {
	var (
		ordersPath   = flag.String("orders", "", "Path to order ledger CSV")
		profilesPath = flag.String("profiles", "", "Path to customer profile ledger CSV")
		reviewsPath  = flag.String("reviews", "", "Path to review export CSV (required)")
		configPath   = flag.String("config", "", "Optional: pattern/threshold YAML, defaults compiled in")
		dbPath       = flag.String("db", "", "Optional: SQLite file to persist the report")
	)
	flag.Parse()

	if *reviewsPath == "" {
		log.Fatal("--reviews required")
	}

	ctx := context.Background()

	comp, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var src seglens.Sources

	if *ordersPath != "" {
		f, err := os.Open(*ordersPath)
		if err != nil {
			log.Fatalf("open orders: %v", err)
		}
		defer f.Close()
		src.Orders, err = ledger.NewCSVOrderSource(f)
		if err != nil {
			log.Fatalf("read orders: %v", err)
		}
	}

	if *profilesPath != "" {
		f, err := os.Open(*profilesPath)
		if err != nil {
			log.Fatalf("open profiles: %v", err)
		}
		defer f.Close()
		src.Profiles, err = ledger.NewCSVProfileSource(f)
		if err != nil {
			log.Fatalf("read profiles: %v", err)
		}
	}

	rf, err := os.Open(*reviewsPath)
	if err != nil {
		log.Fatalf("open reviews: %v", err)
	}
	src.Reviews, err = review.LoadCSV(rf)
	rf.Close()
	if err != nil {
		log.Fatalf("read reviews: %v", err)
	}

	rep, err := seglens.New(comp).Run(ctx, src)
	if err != nil {
		log.Fatalf("run pipeline: %v", err)
	}

	log.Printf("run %s: orders %d folded / %d skipped, profiles %d folded / %d skipped, reviews %d tagged",
		rep.RunID,
		rep.Counters.Orders.RowsFolded, rep.Counters.Orders.RowsSkipped,
		rep.Counters.Profiles.RowsFolded, rep.Counters.Profiles.RowsSkipped,
		rep.Counters.ReviewsTagged)

	if *dbPath != "" {
		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		if err := st.SaveReport(ctx, rep); err != nil {
			st.Close()
			log.Fatalf("save report: %v", err)
		}
		if err := st.Close(); err != nil {
			log.Fatalf("close store: %v", err)
		}
		log.Printf("persisted run %s to %s", rep.RunID, *dbPath)
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	fmt.Println(string(out))
}
