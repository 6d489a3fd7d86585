package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/schedule"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	getAvailableSlotsUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/get_available_slots"
	quotePriceUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/quote_price"
)

var (
	slotsSlug      string
	slotsDate      string
	slotsServiceID int64
	slotsFormulaID int64
	slotsSizeID    int64
	slotsAddOnIDs  []int64
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Print available slots of a shop for a date",
	Long: `Compute the slots the public booking page would show for a selection.

Uses the same quote and slot computation as the HTTP API.`,
	Example: `  detailing-booking slots --shop shine-lyon --service 5 --size 2 --date 2025-06-16`,
	RunE:    runSlots,
}

func init() {
	slotsCmd.Flags().StringVar(&slotsSlug, "shop", "", "Shop slug")
	slotsCmd.Flags().StringVar(&slotsDate, "date", "", "Date (YYYY-MM-DD)")
	slotsCmd.Flags().Int64Var(&slotsServiceID, "service", 0, "Service ID")
	slotsCmd.Flags().Int64Var(&slotsFormulaID, "formula", 0, "Formula ID (optional)")
	slotsCmd.Flags().Int64Var(&slotsSizeID, "size", 0, "Vehicle size ID (optional)")
	slotsCmd.Flags().Int64SliceVar(&slotsAddOnIDs, "add-on", nil, "Add-on IDs (repeatable)")
	_ = slotsCmd.MarkFlagRequired("shop")
	_ = slotsCmd.MarkFlagRequired("date")
	_ = slotsCmd.MarkFlagRequired("service")
}

func runSlots(cmd *cobra.Command, args []string) error {
	date, err := time.Parse(domain.DateFormat, slotsDate)
	if err != nil {
		return fmt.Errorf("invalid --date %q: %w", slotsDate, err)
	}

	selection := domain.Selection{ServiceID: slotsServiceID, AddOnIDs: slotsAddOnIDs}
	if slotsFormulaID > 0 {
		selection.FormulaID = &slotsFormulaID
	}
	if slotsSizeID > 0 {
		selection.VehicleSizeID = &slotsSizeID
	}

	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	quoter := quotePriceUC.NewUseCase(shopRepo.NewRepository(a.db), catalogRepo.NewRepository(a.db), a.metrics, a.log)
	uc := getAvailableSlotsUC.NewUseCase(
		reservationRepo.NewRepository(a.db),
		scheduleRepo.NewRepository(a.db),
		quoter,
		a.log,
	)

	resp, err := uc.Execute(cmd.Context(), &getAvailableSlotsUC.Request{
		Slug:      slotsSlug,
		Selection: selection,
		Date:      date,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s on %s: %s, %d min\n",
		resp.Quote.ServiceName, resp.Date.Format(domain.DateFormat),
		resp.Quote.TotalPrice.StringFixed(2), resp.Quote.TotalDurationMinutes)

	if resp.Closed {
		fmt.Fprintln(out, "Closed")
		return nil
	}
	if len(resp.Slots) == 0 {
		fmt.Fprintln(out, "No slots available")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tEND\tFREE")
	for _, s := range resp.Slots {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\n", s.StartTime, s.EndTime, s.AvailableSpots, s.TotalSpots)
	}
	return tw.Flush()
}
