package db

import (
	"github.com/gocql/gocql"
	"go.uber.org/atomic"
)

// dcInferringPolicy round-robins over all hosts until the first host is added, then keeps to
// the data center of that host.
type dcInferringPolicy struct {
	child      atomic.Value
	localDcSet atomic.Bool
}

type childPolicy struct {
	gocql.HostSelectionPolicy
}

func NewDefaultHostSelectionPolicy() gocql.HostSelectionPolicy {
	return gocql.TokenAwareHostPolicy(NewDcInferringPolicy(), gocql.ShuffleReplicas())
}

func NewDcInferringPolicy() *dcInferringPolicy {
	policy := &dcInferringPolicy{}
	policy.child.Store(childPolicy{gocql.RoundRobinHostPolicy()})
	return policy
}

func (p *dcInferringPolicy) current() gocql.HostSelectionPolicy {
	return p.child.Load().(childPolicy).HostSelectionPolicy
}

func (p *dcInferringPolicy) AddHost(host *gocql.HostInfo) {
	if p.localDcSet.CAS(false, true) {
		local := gocql.DCAwareRoundRobinPolicy(host.DataCenter())
		p.child.Store(childPolicy{local})
		local.AddHost(host)
		return
	}
	p.current().AddHost(host)
}

func (p *dcInferringPolicy) RemoveHost(host *gocql.HostInfo) {
	p.current().RemoveHost(host)
}

func (p *dcInferringPolicy) HostUp(host *gocql.HostInfo) {
	p.current().HostUp(host)
}

func (p *dcInferringPolicy) HostDown(host *gocql.HostInfo) {
	p.current().HostDown(host)
}

func (p *dcInferringPolicy) SetPartitioner(partitioner string) {
	p.current().SetPartitioner(partitioner)
}

func (p *dcInferringPolicy) KeyspaceChanged(e gocql.KeyspaceUpdateEvent) {
	p.current().KeyspaceChanged(e)
}

// Init is not called by the token aware parent on its fallback policy
func (p *dcInferringPolicy) Init(*gocql.Session) {
}

func (p *dcInferringPolicy) IsLocal(host *gocql.HostInfo) bool {
	return p.current().IsLocal(host)
}

func (p *dcInferringPolicy) Pick(query gocql.ExecutableQuery) gocql.NextHost {
	return p.current().Pick(query)
}
