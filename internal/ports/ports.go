package ports

// DatapathPort is a hexagonal port for inspecting the datapath (via ovs-dpctl).
type DatapathPort interface {
	// Show returns the raw combined stdout+stderr of `ovs-dpctl show`.
	Show() (string, error)
}

// OVSBridgePort is a hexagonal port for manipulating OpenFlow rules in OVS (via ovs-ofctl).
type OVSBridgePort interface {
	// DumpFlows returns the raw combined stdout+stderr of `ovs-ofctl dump-flows <bridge>`.
	DumpFlows(bridge string) (string, error)
	DelFlows(argv []string) error
}

// OVSDBPort is a hexagonal port for reading port state from the local Open_vSwitch DB.
type OVSDBPort interface {
	// InterfaceOfPorts returns the ofport numbers of every interface attached
	// to the named bridge, as decimal string tokens.
	InterfaceOfPorts(bridge string) ([]string, error)
}
