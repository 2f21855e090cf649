package promo

import "time"

// Seed returns the launch promotions, valid from the start of launch's day.
func Seed(launch time.Time) []*PromoCode {
	from := launch.UTC().Truncate(24 * time.Hour)
	mk := func(code, title, desc string, pct, min float64, months int) *PromoCode {
		p, _ := NewPromoCode(code, title, desc, pct, min, from, from.AddDate(0, months, 0).Add(-time.Second))
		return p
	}
	return []*PromoCode{
		mk("FIMDESEMANA20", "Especial Fim de Semana", "Ganhe 20% de desconto em todas as sessões de sábado e domingo", 20, 0, 12),
		mk("FAMILIA4", "Pacote Família", "Compre 4 ingressos e ganhe 2 combos de pipoca grátis", 15, 48, 1),
		mk("ESTUDANTE15", "Desconto Estudante", "15% de desconto com carteira de estudante válida", 15, 0, 12),
		mk("MATINE25", "Matinê", "Sessões antes das 12h - 25% de desconto", 25, 0, 2),
	}
}
