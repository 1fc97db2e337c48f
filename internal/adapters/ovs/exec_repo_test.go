package ovs

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

type fakeExecutor struct {
	out  string
	err  error
	runs [][]string
	ctxs []context.Context
}

func (f *fakeExecutor) Run(ctx context.Context, argv []string) (string, error) {
	f.runs = append(f.runs, argv)
	f.ctxs = append(f.ctxs, ctx)
	return f.out, f.err
}

func TestShowArgv(t *testing.T) {
	g := NewWithT(t)

	fe := &fakeExecutor{out: "port 1 eth0\nport 2 eth1\n"}
	o := NewExecOVS(fe)

	out, err := o.Show()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal(fe.out))
	g.Expect(fe.runs).To(Equal([][]string{{"ovs-dpctl", "show"}}))
}

func TestDumpFlowsArgv(t *testing.T) {
	g := NewWithT(t)

	fe := &fakeExecutor{out: "in_port=2 actions=drop"}
	o := NewExecOVS(fe)

	out, err := o.DumpFlows("azure0")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal(fe.out))
	g.Expect(fe.runs).To(Equal([][]string{{"ovs-ofctl", "dump-flows", "azure0"}}))
}

func TestDelFlowsPassesArgvThrough(t *testing.T) {
	g := NewWithT(t)

	fe := &fakeExecutor{}
	o := NewExecOVS(fe)

	argv := BuildDelFlowsCommand("azure0", "5")
	g.Expect(argv).To(Equal([]string{"ovs-ofctl", "del-flows", "azure0", "ip,in_port=5"}))

	g.Expect(o.DelFlows(argv)).To(Succeed())
	g.Expect(fe.runs).To(Equal([][]string{argv}))
}

func TestDelFlowsPropagatesError(t *testing.T) {
	g := NewWithT(t)

	fe := &fakeExecutor{err: errors.New("spawn failed")}
	o := NewExecOVS(fe)

	err := o.DelFlows(BuildDelFlowsCommand("azure0", "5"))
	g.Expect(err).To(MatchError("spawn failed"))
}

func TestTimeoutContext(t *testing.T) {
	g := NewWithT(t)

	fe := &fakeExecutor{}
	o := NewExecOVS(fe)

	// default: no deadline, a hung tool blocks the run
	_, _ = o.Show()
	_, hasDeadline := fe.ctxs[0].Deadline()
	g.Expect(hasDeadline).To(BeFalse())

	o.Timeout = time.Second
	_, _ = o.Show()
	_, hasDeadline = fe.ctxs[1].Deadline()
	g.Expect(hasDeadline).To(BeTrue())
}
