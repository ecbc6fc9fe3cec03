package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// RenderNetworksList renders each network with its chain ID or the error
// reaching it. source names where the network list came from.
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult, source string) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintf(r.out, "🌐 Available Networks (from %s):\n", source)
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := " "
		if network.Name == result.Current {
			marker = "*"
		}
		if network.Error != nil {
			line := fmt.Sprintf("%s ❌ %s - Error: %v", marker, network.Name, network.Error)
			if r.color {
				line = color.New(color.FgRed).Sprint(line)
			}
			fmt.Fprintln(r.out, line)
			continue
		}
		fmt.Fprintf(r.out, "%s ✅ %s - Chain ID: %d (%s)\n", marker, network.Name, network.ChainID, network.RPCURL)
	}

	return nil
}
