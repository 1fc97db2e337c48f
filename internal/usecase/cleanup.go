package usecase

import (
	"fmt"
	"regexp"
	"strings"

	ovsAdapter "github.com/enginrect/ovs-rule-reaper/internal/adapters/ovs"
	"github.com/enginrect/ovs-rule-reaper/internal/domain"
	"github.com/enginrect/ovs-rule-reaper/internal/ports"
)

// Tokens are matched against the raw combined output, not line by line, and
// the captured digit runs stay strings throughout.
var (
	usedPortRE = regexp.MustCompile(`port (\d+)`)
	inPortRE   = regexp.MustCompile(`in_port=(\d+)`)
)

// UsedPortSet extracts every `port <N>` token from `ovs-dpctl show` output.
func UsedPortSet(dp ports.DatapathPort) (domain.PortSet, error) {
	out, err := dp.Show()
	if err != nil {
		return nil, fmt.Errorf("failed to execute ovs-dpctl show command: %w", err)
	}
	used := domain.PortSet{}
	for _, m := range usedPortRE.FindAllStringSubmatch(out, -1) {
		used.Add(m[1])
	}
	return used, nil
}

// UsedPortSetFromDB builds the used-port set from the Open_vSwitch database
// instead of the kernel datapath.
func UsedPortSetFromDB(db ports.OVSDBPort, bridge string) (domain.PortSet, error) {
	tokens, err := db.InterfaceOfPorts(bridge)
	if err != nil {
		return nil, err
	}
	return domain.NewPortSet(tokens...), nil
}

// ReferencedInPorts extracts every `in_port=<N>` token from the bridge's
// flow dump, in encounter order, duplicates preserved.
func ReferencedInPorts(br ports.OVSBridgePort, bridge string) ([]string, error) {
	out, err := br.DumpFlows(bridge)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ovs-ofctl dump-flows command: %w", err)
	}
	referenced := []string{}
	for _, m := range inPortRE.FindAllStringSubmatch(out, -1) {
		referenced = append(referenced, m[1])
	}
	return referenced, nil
}

// LeakedInPorts keeps the referenced tokens absent from the used set,
// preserving order and duplicates.
func LeakedInPorts(referenced []string, used domain.PortSet) []string {
	leaked := []string{}
	for _, port := range referenced {
		if !used.Has(port) {
			leaked = append(leaked, port)
		}
	}
	return leaked
}

// RemoveLeakedFlows reconciles the bridge's flow table against the kernel
// datapath: flows whose in_port no longer exists in the datapath are
// deleted. The first delete that cannot be carried out aborts the run,
// leaving later leaked ports untouched.
func RemoveLeakedFlows(dp ports.DatapathPort, br ports.OVSBridgePort, bridge string) (domain.Report, error) {
	used, err := UsedPortSet(dp)
	if err != nil {
		return domain.Report{}, err
	}
	return removeLeaked(used, br, bridge)
}

// RemoveLeakedFlowsFromDB is RemoveLeakedFlows with the used-port set read
// from the Open_vSwitch database.
func RemoveLeakedFlowsFromDB(db ports.OVSDBPort, br ports.OVSBridgePort, bridge string) (domain.Report, error) {
	used, err := UsedPortSetFromDB(db, bridge)
	if err != nil {
		return domain.Report{}, err
	}
	return removeLeaked(used, br, bridge)
}

func removeLeaked(used domain.PortSet, br ports.OVSBridgePort, bridge string) (domain.Report, error) {
	referenced, err := ReferencedInPorts(br, bridge)
	if err != nil {
		return domain.Report{}, err
	}

	report := domain.Report{
		Bridge:     bridge,
		Used:       used.Sorted(),
		Referenced: referenced,
		Deleted:    []string{},
	}
	for _, port := range LeakedInPorts(referenced, used) {
		argv := ovsAdapter.BuildDelFlowsCommand(bridge, port)
		if err := br.DelFlows(argv); err != nil {
			return report, fmt.Errorf("delete command %s does not work: %w", strings.Join(argv, " "), err)
		}
		report.Deleted = append(report.Deleted, port)
	}
	return report, nil
}
