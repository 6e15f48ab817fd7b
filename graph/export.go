package graph

import "encoding/json"

type jsonNode struct {
	ID string `json:"id"`
}

type jsonEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

// ToJSON exports the graph as {nodes: [{id}], edges: [{source, target,
// weight}]}, edges emitted once per stored edge in gonum's edge-iteration
// order.
func (gr *Graph) ToJSON() (string, error) {
	nodeIDs := gr.NodeIDs()
	out := jsonGraph{
		Nodes: make([]jsonNode, len(nodeIDs)),
	}
	for i, id := range nodeIDs {
		out.Nodes[i] = jsonNode{ID: gr.Label(id)}
	}

	it := gr.g.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		out.Edges = append(out.Edges, jsonEdge{
			Source: gr.Label(e.From().ID()),
			Target: gr.Label(e.To().ID()),
			Weight: e.Weight(),
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
