package ovsdb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ovn-kubernetes/libovsdb/client"
	"github.com/ovn-kubernetes/libovsdb/model"

	"github.com/enginrect/ovs-rule-reaper/internal/domain"
)

// Minimal models we need from Open_vSwitch
type Bridge struct {
	UUID  string   `ovsdb:"_uuid"`
	Name  string   `ovsdb:"name"`
	Ports []string `ovsdb:"ports"` // Port refs (UUIDs)
}

type Port struct {
	UUID       string   `ovsdb:"_uuid"`
	Name       string   `ovsdb:"name"`
	Interfaces []string `ovsdb:"interfaces"` // Interface refs (UUIDs)
}

type Interface struct {
	UUID   string `ovsdb:"_uuid"`
	Name   string `ovsdb:"name"`
	OfPort *int   `ovsdb:"ofport"` // optional; negative while unassigned
}

type OVSDBRepo struct {
	cli client.Client
}

// NewOVSDBRepo connects to the local Open_vSwitch database. An empty
// endpoint falls back to the vswitchd unix socket.
func NewOVSDBRepo(endpoint string) (*OVSDBRepo, error) {
	if endpoint == "" {
		endpoint = domain.DefaultOVSDBEndpoint
	}
	dbModel, err := model.NewClientDBModel("Open_vSwitch", map[string]model.Model{
		"Bridge":    &Bridge{},
		"Port":      &Port{},
		"Interface": &Interface{},
	})
	if err != nil {
		return nil, err
	}

	cli, err := client.NewOVSDBClient(dbModel, client.WithEndpoint(endpoint))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cli.Connect(ctx); err != nil {
		return nil, err
	}
	// Monitor for cache usage
	if _, err := cli.MonitorAll(ctx); err != nil {
		return nil, err
	}
	return &OVSDBRepo{cli: cli}, nil
}

// InterfaceOfPorts walks Bridge -> Port -> Interface and collects the
// assigned ofport numbers as decimal string tokens, skipping interfaces
// whose ofport is unset or still negative.
func (r *OVSDBRepo) InterfaceOfPorts(bridge string) ([]string, error) {
	var brs []Bridge
	// Query cache to reduce load
	if err := r.cli.WhereCache(func(b *Bridge) bool { return b.Name == bridge }).List(context.Background(), &brs); err != nil {
		return nil, err
	}
	if len(brs) == 0 {
		return nil, fmt.Errorf("bridge %s not found in Open_vSwitch database", bridge)
	}

	tokens := []string{}
	for _, portUUID := range brs[0].Ports {
		var ps []Port
		// Lookup by UUID index
		q := &Port{UUID: portUUID}
		if err := r.cli.Where(q).List(context.Background(), &ps); err != nil {
			return nil, err
		}
		if len(ps) == 0 {
			continue
		}
		for _, ifaceUUID := range ps[0].Interfaces {
			var ifs []Interface
			iq := &Interface{UUID: ifaceUUID}
			if err := r.cli.Where(iq).List(context.Background(), &ifs); err != nil {
				return nil, err
			}
			if len(ifs) == 0 || ifs[0].OfPort == nil || *ifs[0].OfPort < 0 {
				continue
			}
			tokens = append(tokens, strconv.Itoa(*ifs[0].OfPort))
		}
	}
	return tokens, nil
}

func (r *OVSDBRepo) Close() {
	r.cli.Disconnect()
}
