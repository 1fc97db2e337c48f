package domain

const (
	// Bridge is the default bridge whose flow table gets reconciled.
	Bridge = "azure0"

	DPCtlCommand = "ovs-dpctl"
	OfctlCommand = "ovs-ofctl"

	// local Open_vSwitch database, for the ovsdb used-port source
	DefaultOVSDBEndpoint = "unix:/var/run/openvswitch/db.sock"
)
