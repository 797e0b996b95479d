package policy

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/yaricom/goNEAT/v2/neat/genetics"
	"github.com/yaricom/goNEAT/v2/neat/network"

	"classicgame/agent"
	"classicgame/game"
)

// DefectThreshold is the output activation above which a network defects.
const DefectThreshold = 0.5

// maxDepth caps the activation depth of evolved networks.
const maxDepth = 20

// ErrSensorMismatch is returned when a network's input layer does not match the encoding.
var ErrSensorMismatch = errors.New("network inputs do not match the history encoding")

// Network plays whatever an evolved NEAT network decides from the encoded history.
type Network struct {
	net      *network.Network
	encoding agent.HistoryEncoding
	depth    int
}

// NewNetwork checks that net has one input neuron per encoded value. Bias neurons are not
// counted.
func NewNetwork(net *network.Network, encoding agent.HistoryEncoding) (*Network, error) {
	if net == nil {
		return nil, errors.New("nil network")
	}
	if n := InputCount(net.AllNodes()); n != encoding.Size() {
		return nil, errors.Wrapf(ErrSensorMismatch, "network has %d inputs, encoding needs %d", n, encoding.Size())
	}
	depth, err := net.MaxActivationDepthFast(maxDepth)
	if err != nil || depth <= 0 {
		depth = maxDepth
	}
	if _, err = net.Flush(); err != nil {
		return nil, errors.Wrap(err, "flush network")
	}
	return &Network{net: net, encoding: encoding, depth: depth}, nil
}

// NewNetworkFromGenome reads a plain text genome and builds its phenotype.
func NewNetworkFromGenome(r io.Reader, encoding agent.HistoryEncoding) (*Network, error) {
	genome, err := genetics.ReadGenome(r, 1)
	if err != nil {
		return nil, errors.Wrap(err, "read genome")
	}
	net, err := genome.Genesis(1)
	if err != nil {
		return nil, errors.Wrap(err, "build network")
	}
	return NewNetwork(net, encoding)
}

// InputCount counts the input neurons among nodes.
func InputCount(nodes []*network.NNode) int {
	n := 0
	for _, node := range nodes {
		if node.NeuronType == network.InputNeuron {
			n++
		}
	}
	return n
}

// WriteStartGenes writes a plain text start genome with a bias, one input per sensor and
// a single output, every input linked to the output with zero weight.
func WriteStartGenes(w io.Writer, sensors int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "/* start genome: bias, %d inputs, 1 output */\n", sensors)
	fmt.Fprintln(bw, "genomestart 1")
	fmt.Fprintln(bw, "trait 1 0.1 0 0 0 0 0 0 0")
	fmt.Fprintln(bw, "trait 2 0.2 0 0 0 0 0 0 0")
	fmt.Fprintln(bw, "trait 3 0.3 0 0 0 0 0 0 0")
	fmt.Fprintln(bw, "node 1 0 1 3")
	for i := 0; i < sensors; i++ {
		fmt.Fprintf(bw, "node %d 0 1 1\n", i+2)
	}
	out := sensors + 2
	fmt.Fprintf(bw, "node %d 0 0 2\n", out)
	for in := 1; in < out; in++ {
		fmt.Fprintf(bw, "gene %d %d %d 0.0 0 %d 0 1\n", (in-1)%3+1, in, out, in)
	}
	fmt.Fprintln(bw, "genomeend 1")
	return bw.Flush()
}

// StartGenome is the genome WriteStartGenes describes for encoding.
func StartGenome(encoding agent.HistoryEncoding) (*genetics.Genome, error) {
	var buf bytes.Buffer
	if err := WriteStartGenes(&buf, encoding.Size()); err != nil {
		return nil, err
	}
	genome, err := genetics.ReadGenome(&buf, 1)
	return genome, errors.Wrap(err, "read start genome")
}

// SensorCount is the number of non-bias inputs a genome needs to drive this policy.
func (p *Network) SensorCount() int {
	return p.encoding.Size()
}

// SelectAction abstains when the history no longer fits the encoding or the network fails
// to activate. The network is relaxed for its full depth and flushed after every decision.
func (p *Network) SelectAction(state agent.History) (game.Action, bool) {
	buf, err := p.encoding.Encode(state)
	if err != nil {
		return 0, false
	}
	sensors := make([]float64, len(buf))
	for i, v := range buf {
		sensors[i] = float64(v)
	}
	defer func() { _, _ = p.net.Flush() }()
	if err = p.net.LoadSensors(sensors); err != nil {
		return 0, false
	}
	if _, err = p.net.ForwardSteps(p.depth); err != nil {
		return 0, false
	}
	outputs := p.net.ReadOutputs()
	if len(outputs) == 0 {
		return 0, false
	}

	decision := game.Cooperate
	if outputs[0] > DefectThreshold {
		decision = game.Defect
	}
	return decision, true
}
