package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/params"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	deployerStyle = color.New(color.FgGreen, color.Bold)
	errorStyle    = color.New(color.FgRed)
	faintStyle    = color.New(color.Faint)
)

// AccountsRenderer renders the signer list of a network
type AccountsRenderer struct {
	out   io.Writer
	color bool
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer, color bool) *AccountsRenderer {
	return &AccountsRenderer{
		out:   out,
		color: color,
	}
}

// RenderAccounts renders signers in order. The first row is the deployer.
func (r *AccountsRenderer) RenderAccounts(result *usecase.ListAccountsResult) error {
	if len(result.Accounts) == 0 {
		fmt.Fprintf(r.out, "No signers available on %s (chain %d)\n", result.Network, result.ChainID)
		return nil
	}

	fmt.Fprintf(r.out, "Signers on %s (chain %d):\n\n", result.Network, result.ChainID)

	title := cases.Title(language.English)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"#", "Address", "Kind", "Balance (ETH)"})

	for i, account := range result.Accounts {
		address := account.Signer.Address.Hex()
		if i == 0 {
			address = r.style(deployerStyle, address) + r.style(faintStyle, " (deployer)")
		}

		balance := FormatEther(account.Balance)
		if account.Error != nil {
			balance = r.style(errorStyle, "error: "+account.Error.Error())
		}

		t.AppendRow(table.Row{i, address, title.String(string(account.Signer.Kind)), balance})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

func (r *AccountsRenderer) style(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

// FormatEther formats a wei amount as ether with four decimals
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "-"
	}
	ether := new(big.Float).Quo(new(big.Float).SetInt(wei), new(big.Float).SetInt64(params.Ether))
	return ether.Text('f', 4)
}
