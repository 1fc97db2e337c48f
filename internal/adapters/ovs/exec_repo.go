package ovs

import (
	"time"

	"github.com/enginrect/ovs-rule-reaper/internal/domain"
	"github.com/enginrect/ovs-rule-reaper/internal/infra/executor"
)

type ExecOVS struct {
	Exec executor.Executor
	// Timeout applies per external command; zero means none, matching the
	// historical cleanup behavior of blocking on a hung tool.
	Timeout time.Duration
}

func NewExecOVS(exec executor.Executor) *ExecOVS {
	return &ExecOVS{Exec: exec}
}

func (o *ExecOVS) Show() (string, error) {
	ctx, cancel := executor.WithTimeout(o.Timeout)
	defer cancel()
	argv := []string{domain.DPCtlCommand, "show"}
	return o.Exec.Run(ctx, argv)
}

func (o *ExecOVS) DumpFlows(bridge string) (string, error) {
	ctx, cancel := executor.WithTimeout(o.Timeout)
	defer cancel()
	argv := []string{domain.OfctlCommand, "dump-flows", bridge}
	return o.Exec.Run(ctx, argv)
}

func (o *ExecOVS) DelFlows(argv []string) error {
	ctx, cancel := executor.WithTimeout(o.Timeout)
	defer cancel()
	_, err := o.Exec.Run(ctx, argv)
	return err
}

// BuildDelFlowsCommand builds the argv for deleting the IP flows that match
// one stale in_port on the bridge.
func BuildDelFlowsCommand(bridge, port string) []string {
	return []string{domain.OfctlCommand, "del-flows", bridge, "ip,in_port=" + port}
}
