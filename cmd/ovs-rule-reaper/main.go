package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/enginrect/ovs-rule-reaper/internal/adapters/ovs"
	"github.com/enginrect/ovs-rule-reaper/internal/adapters/ovsdb"
	apphttp "github.com/enginrect/ovs-rule-reaper/internal/app/http"
	"github.com/enginrect/ovs-rule-reaper/internal/domain"
	"github.com/enginrect/ovs-rule-reaper/internal/infra/executor"
	"github.com/enginrect/ovs-rule-reaper/internal/ports"
	"github.com/enginrect/ovs-rule-reaper/internal/usecase"
)

func main() {
	bridge := flag.String("bridge", domain.Bridge, "OVS bridge to reconcile")
	serve := flag.String("serve", "", "run as an HTTP agent on this bind address instead of once, e.g. 0.0.0.0:9406")
	timeout := flag.Duration("timeout", 0, "per-command timeout for the ovs tools; 0 disables it")
	usedFrom := flag.String("used-from", "datapath", "used-port source: datapath (ovs-dpctl) or ovsdb")
	ovsdbEndpoint := flag.String("ovsdb", domain.DefaultOVSDBEndpoint, "Open_vSwitch database endpoint, used with -used-from=ovsdb")
	flag.Parse()

	ovsExec := ovs.NewExecOVS(executor.SubprocessExecutor{})
	ovsExec.Timeout = *timeout

	var db ports.OVSDBPort
	switch *usedFrom {
	case "datapath":
	case "ovsdb":
		repo, err := ovsdb.NewOVSDBRepo(*ovsdbEndpoint)
		if err != nil {
			log.Fatalf("failed to connect to ovsdb: %v", err)
		}
		defer repo.Close()
		db = repo
	default:
		log.Fatalf("unknown used-port source %q", *usedFrom)
	}

	if *serve != "" {
		srv := apphttp.NewServer(ovsExec, ovsExec, db)
		if err := srv.Start(*serve); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	var (
		report domain.Report
		err    error
	)
	if db != nil {
		report, err = usecase.RemoveLeakedFlowsFromDB(db, ovsExec, *bridge)
	} else {
		report, err = usecase.RemoveLeakedFlows(ovsExec, ovsExec, *bridge)
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if len(report.Deleted) > 0 {
		fmt.Printf("deleted flows for %d leaked port(s) on %s: %v\n", len(report.Deleted), report.Bridge, report.Deleted)
	}
}
