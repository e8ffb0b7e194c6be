package ports

import "slackgraph/internal/domain"

// GraphSink receives constructed graph records. Adding the same address
// twice must be idempotent; SetNodeWeight overwrites.
type GraphSink interface {
	AddNode(n domain.Node)
	AddEdge(e domain.Edge)
	SetNodeWeight(addr domain.NodeAddress, weight float64)
}
