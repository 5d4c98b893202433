package service

import (
	"context"

	"shipmate/internal/adapters/upstream/shipping"
	"shipmate/internal/core/actor"
	"shipmate/internal/modkit"
	"shipmate/internal/platform/logger"
)

// campaignCategories are the marketing category types the game offers.
// Renewal keeps at least one campaign live in each
var campaignCategories = []string{"container", "tanker", "reputation"}

// campaignFloor is the active-category count under which renewal kicks in
const campaignFloor = 3

// rebuyPass tops up fuel and CO2 when prices sit under the rebuy
// thresholds, and alerts when they spike over the alert thresholds.
// Purchases run under their respective locks so a concurrent pass for the
// same actor cannot double-buy
func (s *Service) rebuyPass(ctx context.Context, st *actor.State) {
	set := st.Settings()
	prices := st.Prices()
	bk, known := st.Bunker()
	if !known {
		return
	}
	log := logger.C(ctx)
	id := st.ID()

	if set.AutoFuel && prices.Fuel > 0 {
		switch {
		case prices.Fuel <= set.FuelPriceRebuy && bk.Fuel < bk.MaxFuel:
			if st.TryAcquire(actor.LockFuelPurchase) {
				func() {
					defer func() {
						st.Release(actor.LockFuelPurchase)
						s.emit(id, modkit.EventLocks, st.Locks())
					}()
					amount := bk.MaxFuel - bk.Fuel
					res, err := s.up.PurchaseFuel(ctx, amount, prices.Fuel)
					if err != nil {
						log.Warn().Err(err).Float64("amount", amount).Msg("fuel rebuy failed")
						return
					}
					bk.Fuel = res.NewTotal
					bk.Cash -= res.Cost
					st.SetBunker(bk)
					s.emit(id, modkit.EventBunker, bk)
					s.emit(id, modkit.EventNotice, modkit.Notice{
						Level: modkit.NoticeInfo,
						Text:  s.pr.Sprintf("Bought %.0ft fuel at $%d/t", amount, int64(prices.Fuel)),
					})
				}()
			}
		case prices.Fuel > set.FuelPriceAlert:
			s.emit(id, modkit.EventNotice, modkit.Notice{
				Level: modkit.NoticeWarning,
				Text:  s.pr.Sprintf("Fuel price $%d/t is over the alert threshold", int64(prices.Fuel)),
			})
		}
	}

	if set.AutoCO2 && prices.CO2 > 0 {
		switch {
		case prices.CO2 <= set.CO2PriceRebuy && bk.CO2 < bk.MaxCO2:
			if st.TryAcquire(actor.LockCO2Purchase) {
				func() {
					defer func() {
						st.Release(actor.LockCO2Purchase)
						s.emit(id, modkit.EventLocks, st.Locks())
					}()
					amount := bk.MaxCO2 - bk.CO2
					res, err := s.up.PurchaseCO2(ctx, amount, prices.CO2)
					if err != nil {
						log.Warn().Err(err).Float64("amount", amount).Msg("co2 rebuy failed")
						return
					}
					bk.CO2 = res.NewTotal
					bk.Cash -= res.Cost
					st.SetBunker(bk)
					s.emit(id, modkit.EventBunker, bk)
					s.emit(id, modkit.EventNotice, modkit.Notice{
						Level: modkit.NoticeInfo,
						Text:  s.pr.Sprintf("Bought %.0ft CO2 quota at $%d/t", amount, int64(prices.CO2)),
					})
				}()
			}
		case prices.CO2 > set.CO2PriceAlert:
			s.emit(id, modkit.EventNotice, modkit.Notice{
				Level: modkit.NoticeWarning,
				Text:  s.pr.Sprintf("CO2 price $%d/t is over the alert threshold", int64(prices.CO2)),
			})
		}
	}
}

func (s *Service) repairPilot(ctx context.Context, st *actor.State, idx shipping.GameIndex) error {
	set := st.Settings()
	if !set.AutoRepair || idx.RepairableCount == 0 {
		return nil
	}
	if !st.TryAcquire(actor.LockRepair) {
		return nil
	}
	id := st.ID()
	defer func() {
		st.Release(actor.LockRepair)
		s.emit(id, modkit.EventLocks, st.Locks())
	}()

	n, err := s.up.RepairVessels(ctx)
	if err != nil {
		return err
	}
	_, drydock := st.Counts()
	st.SetCounts(0, drydock)
	s.emit(id, modkit.EventRepairCount, 0)
	s.emit(id, modkit.EventNotice, modkit.Notice{
		Level: modkit.NoticeInfo,
		Text:  s.pr.Sprintf("Repaired %d vessels", n),
	})
	return nil
}

func (s *Service) drydockPilot(ctx context.Context, st *actor.State, idx shipping.GameIndex) error {
	set := st.Settings()
	if !set.AutoDrydock || idx.DrydockDueCount == 0 {
		return nil
	}
	id := st.ID()

	n, err := s.up.DrydockVessels(ctx)
	if err != nil {
		return err
	}
	repair, _ := st.Counts()
	st.SetCounts(repair, 0)
	s.emit(id, modkit.EventDrydockCount, 0)
	s.emit(id, modkit.EventNotice, modkit.Notice{
		Level: modkit.NoticeInfo,
		Text:  s.pr.Sprintf("Sent %d vessels to drydock", n),
	})
	return nil
}

func (s *Service) hijackPilot(ctx context.Context, st *actor.State) error {
	if !st.Settings().AutoHijack {
		return nil
	}
	incidents, err := s.up.Hijackings(ctx)
	if err != nil {
		return err
	}
	id := st.ID()
	for _, h := range incidents {
		if err := s.up.NegotiateHijack(ctx, h.ID); err != nil {
			logger.C(ctx).Warn().Err(err).Int64("hijack_id", h.ID).Msg("negotiation failed")
			continue
		}
		s.emit(id, modkit.EventNotice, modkit.Notice{
			Level: modkit.NoticeWarning,
			Text:  s.pr.Sprintf("Negotiated release of %s for $%d", h.VesselName, int64(h.Demand)),
		})
	}
	return nil
}

// campaignPilot keeps marketing coverage alive: when the set of active
// campaign categories shrinks under the floor, the missing ones are renewed
func (s *Service) campaignPilot(ctx context.Context, st *actor.State, idx shipping.GameIndex) error {
	if !st.Settings().AutoCampaign {
		return nil
	}
	active := make(map[string]bool, len(idx.ActiveCampaigns))
	for _, c := range idx.ActiveCampaigns {
		active[c.Category] = true
	}
	if len(active) >= campaignFloor {
		return nil
	}
	id := st.ID()
	for _, cat := range campaignCategories {
		if active[cat] {
			continue
		}
		if err := s.up.RenewCampaign(ctx, cat); err != nil {
			logger.C(ctx).Warn().Err(err).Str("category", cat).Msg("campaign renewal failed")
			continue
		}
		s.emit(id, modkit.EventNotice, modkit.Notice{
			Level: modkit.NoticeInfo,
			Text:  "Renewed " + cat + " campaign",
		})
	}
	return nil
}

func (s *Service) coopPilot(ctx context.Context, st *actor.State) error {
	if !st.Settings().AutoCoop {
		return nil
	}
	status, err := s.coop.Get(ctx)
	if err != nil {
		return err
	}
	missing := status.TargetCargo - status.ContributedCargo
	if missing <= 0 {
		return nil
	}
	gained, err := s.up.Contribute(ctx, missing)
	if err != nil {
		return err
	}
	s.coop.Invalidate()
	s.emit(st.ID(), modkit.EventNotice, modkit.Notice{
		Level: modkit.NoticeInfo,
		Text:  s.pr.Sprintf("Contributed %.0f cargo to the cooperative target, gained %.0f", missing, gained),
	})
	return nil
}

func (s *Service) staffPilot(ctx context.Context, st *actor.State) error {
	set := st.Settings()
	if !set.AutoStaff {
		return nil
	}
	staff, err := s.up.Staff(ctx)
	if err != nil {
		return err
	}
	if staff.Morale >= set.StaffMoraleFloor {
		return nil
	}
	if err := s.up.RaiseMorale(ctx); err != nil {
		return err
	}
	s.emit(st.ID(), modkit.EventNotice, modkit.Notice{
		Level: modkit.NoticeInfo,
		Text:  s.pr.Sprintf("Raised crew morale from %.0f%% for $%d", staff.Morale, int64(staff.RaiseFee)),
	})
	return nil
}
