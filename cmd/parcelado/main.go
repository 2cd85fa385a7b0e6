package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cloud-ru/mcp-parcelado-go/internal/calculations"
	"github.com/cloud-ru/mcp-parcelado-go/internal/config"
	"github.com/cloud-ru/mcp-parcelado-go/internal/tools"
	"github.com/cloud-ru/mcp-parcelado-go/internal/validators"
	"github.com/cloud-ru/mcp-parcelado-go/pkg/utils"
	"github.com/urfave/cli"
)

type options struct {
	input        calculations.SimulationInput
	method       string
	amortization bool
}

func main() {
	valorFlag := cli.Float64Flag{Name: "valor", Usage: "valor da compra", Required: true}
	parcelasFlag := cli.IntFlag{Name: "parcelas", Usage: "número de parcelas mensais", Required: true}
	jurosFlag := cli.Float64Flag{Name: "juros", Usage: "juros do parcelamento, % ao mês", Required: true}
	rendimentoFlag := cli.Float64Flag{Name: "rendimento", Usage: "rendimento da aplicação, % ao mês", Required: true}
	inflacaoFlag := cli.Float64Flag{Name: "inflacao", Usage: "inflação, % ao mês"}
	descontoFlag := cli.Float64Flag{Name: "desconto", Usage: "desconto à vista, %"}
	metodoFlag := cli.StringFlag{Name: "metodo", Usage: "método de busca do CET: bisection ou scan"}
	amortizacaoFlag := cli.BoolFlag{Name: "amortizacao", Usage: "imprimir a tabela de amortização"}

	app := cli.NewApp()
	app.Name = "parcelado"
	app.Usage = "parcelado ou à vista: simulação, CET e recomendação"
	app.Flags = []cli.Flag{
		valorFlag,
		parcelasFlag,
		jurosFlag,
		rendimentoFlag,
		inflacaoFlag,
		descontoFlag,
		metodoFlag,
		amortizacaoFlag,
	}
	app.Action = func(cctx *cli.Context) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		opts := options{
			input: calculations.SimulationInput{
				Principal:           cctx.Float64(valorFlag.Name),
				Months:              cctx.Int(parcelasFlag.Name),
				InterestRatePercent: cctx.Float64(jurosFlag.Name),
				ReturnRatePercent:   cctx.Float64(rendimentoFlag.Name),
			},
			method:       cctx.String(metodoFlag.Name),
			amortization: cctx.Bool(amortizacaoFlag.Name),
		}
		if cctx.IsSet(inflacaoFlag.Name) {
			v := cctx.Float64(inflacaoFlag.Name)
			opts.input.InflationRatePercent = &v
		}
		if cctx.IsSet(descontoFlag.Name) {
			v := cctx.Float64(descontoFlag.Name)
			opts.input.CashDiscountPercent = &v
		}

		return run(os.Stdout, cfg, opts)
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out io.Writer, cfg *config.Config, opts options) error {
	if err := validators.CheckSimulationInput(cfg, opts.input); err != nil {
		return err
	}

	solver := tools.SolverOptions(cfg)
	if opts.method != "" {
		solver.Method = opts.method
	}

	report, err := calculations.BuildReport(cfg, opts.input, solver)
	if err != nil {
		return err
	}

	printSimulation(out, report)
	printVerdicts(out, report)

	if opts.amortization {
		schedule, err := calculations.AmortizationSchedule(opts.input.Principal,
			opts.input.InterestRatePercent, opts.input.Months)
		if err != nil {
			return err
		}
		printAmortization(out, schedule)
	}

	return nil
}

func printSimulation(out io.Writer, report *calculations.Report) {
	sim := report.Simulation
	fmt.Fprintf(out, "Parcela: %s x %d\n\n", utils.FormatBRL(sim.Plan.Payment), sim.Plan.Months)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(w, "Mês\tSaldo inicial\tRendimento\tParcela\tSaldo final")
	fmt.Fprintln(w, "---\t-------------\t----------\t-------\t-----------")
	for _, rec := range sim.Schedule {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", rec.Month,
			utils.FormatBRL(rec.OpeningBalance),
			utils.FormatBRL(rec.PeriodReturn),
			utils.FormatBRL(rec.PaymentApplied),
			utils.FormatBRL(rec.ClosingBalance))
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal pago: %s\n", utils.FormatBRL(sim.TotalPaid))
	fmt.Fprintf(out, "Juros pagos: %s\n", utils.FormatBRL(sim.TotalInterest))
	fmt.Fprintf(out, "Saldo final: %s\n", utils.FormatBRL(sim.FinalBalance))
	if sim.InflationBonus != nil {
		fmt.Fprintf(out, "Ganho com inflação: %s\n", utils.FormatBRL(*sim.InflationBonus))
	}
}

func printVerdicts(out io.Writer, report *calculations.Report) {
	rate := report.EffectiveRate
	if rate.Determined {
		fmt.Fprintf(out, "CET: %s a.m. (%s a.a.)\n",
			utils.FormatPercent(rate.MonthlyPercent), utils.FormatPercent(rate.AnnualPercent))
	} else {
		fmt.Fprintln(out, "CET: não determinado")
	}

	if report.Recommendation != nil {
		fmt.Fprintf(out, "\n[%s] %s\n", report.Recommendation.Tier, report.Recommendation.Message)
	}
	fmt.Fprintln(out, report.Balance.Message)
	if report.Discount != nil {
		fmt.Fprintln(out, report.Discount.Message)
	}
}

func printAmortization(out io.Writer, schedule *calculations.AmortizationResult) {
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(w, "Mês\tParcela\tJuros\tAmortização\tSaldo devedor")
	fmt.Fprintln(w, "---\t-------\t-----\t-----------\t-------------")
	for _, e := range schedule.Schedule {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.Month,
			utils.FormatBRL(e.Payment),
			utils.FormatBRL(e.Interest),
			utils.FormatBRL(e.PrincipalComponent),
			utils.FormatBRL(e.RemainingPrincipal))
	}
	w.Flush()

	fmt.Fprintf(out, "Juros totais: %s (%s do valor)\n",
		utils.FormatBRL(schedule.Summary.TotalInterest),
		utils.FormatPercent(schedule.Summary.OverpaymentPercent))
}
