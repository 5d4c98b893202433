package service

import (
	"context"

	"github.com/shopspring/decimal"

	"shipmate/internal/core/actor"
	"shipmate/internal/modkit"
	"shipmate/internal/platform/logger"
)

// Mean-reversion bands: buy under 90% of the market average, sell over
// 110%. Sized small on purpose, this pilot trades pocket change
var (
	buyBand    = decimal.NewFromFloat(0.9)
	sellBand   = decimal.NewFromFloat(1.1)
	tradeQty   = int64(10)
	cashBuffer = decimal.NewFromInt(50000)
)

// stocksPilot runs a single mean-reversion pass over the exchange.
// Decimal arithmetic throughout, share prices do not tolerate float drift
func (s *Service) stocksPilot(ctx context.Context, st *actor.State) error {
	if !st.Settings().AutoStocks {
		return nil
	}
	quotes, err := s.up.StockQuotes(ctx)
	if err != nil {
		return err
	}
	if len(quotes) == 0 {
		return nil
	}

	sum := decimal.Zero
	for _, q := range quotes {
		sum = sum.Add(decimal.NewFromFloat(q.Price))
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(quotes))))
	buyBelow := avg.Mul(buyBand)
	sellAbove := avg.Mul(sellBand)

	bk, known := st.Bunker()
	cash := decimal.NewFromFloat(bk.Cash)
	id := st.ID()
	log := logger.C(ctx)

	for _, q := range quotes {
		price := decimal.NewFromFloat(q.Price)

		switch {
		case q.Owned > 0 && price.GreaterThan(sellAbove):
			if err := s.up.TradeStock(ctx, q.Symbol, -q.Owned); err != nil {
				log.Warn().Err(err).Str("symbol", q.Symbol).Msg("stock sale failed")
				continue
			}
			s.emit(id, modkit.EventNotice, modkit.Notice{
				Level: modkit.NoticeInfo,
				Text:  s.pr.Sprintf("Sold %d %s at $%s", q.Owned, q.Symbol, price.StringFixed(2)),
			})

		case price.LessThan(buyBelow):
			cost := price.Mul(decimal.NewFromInt(tradeQty))
			if known && cash.Sub(cost).LessThan(cashBuffer) {
				continue
			}
			if err := s.up.TradeStock(ctx, q.Symbol, tradeQty); err != nil {
				log.Warn().Err(err).Str("symbol", q.Symbol).Msg("stock purchase failed")
				continue
			}
			cash = cash.Sub(cost)
			s.emit(id, modkit.EventNotice, modkit.Notice{
				Level: modkit.NoticeInfo,
				Text:  s.pr.Sprintf("Bought %d %s at $%s", tradeQty, q.Symbol, price.StringFixed(2)),
			})
		}
	}
	return nil
}
