package catalog

// The default sizes offered for popcorn and fountain drinks.
var tieredSizes = []string{"Small", "Medium", "Large"}

// SeedConcessions returns the concession stand menu loaded on first start.
func SeedConcessions() []Concession {
	return []Concession{
		{ID: "s1", Name: "Pipoca Clássica", Category: "Pipoca", Price: 6.50, Description: "Pipoca fresquinha com manteiga", Sizes: tieredSizes},
		{ID: "s2", Name: "Pipoca Caramelada", Category: "Pipoca", Price: 7.50, Description: "Pipoca doce coberta com caramelo", Sizes: tieredSizes},
		{ID: "s3", Name: "Coca-Cola", Category: "Bebidas", Price: 4.50, Description: "Coca-Cola geladinha", Sizes: tieredSizes},
		{ID: "s4", Name: "Sprite", Category: "Bebidas", Price: 4.50, Description: "Refrigerante refrescante de limão", Sizes: tieredSizes},
		{ID: "s5", Name: "Nachos", Category: "Comidas", Price: 8.00, Description: "Nachos crocantes com molho de queijo"},
		{ID: "s6", Name: "Cachorro-Quente", Category: "Comidas", Price: 7.00, Description: "Cachorro-quente clássico com condimentos"},
		{ID: "s7", Name: "Mix de Balas", Category: "Doces", Price: 5.00, Description: "Mix de balas sortidas"},
		{ID: "s8", Name: "M&M's", Category: "Doces", Price: 4.50, Description: "Chocolate confeito"},
		{ID: "s9", Name: "Pretzel", Category: "Comidas", Price: 6.50, Description: "Pretzel macio com queijo"},
		{ID: "s10", Name: "Água", Category: "Bebidas", Price: 3.00, Description: "Água mineral"},
	}
}

// SeedMovies returns a small starter lineup with showtimes.
func SeedMovies() ([]Movie, []Showtime) {
	movies := []Movie{
		{
			ID: "m1", Title: "Duna: Parte Dois", Genres: []string{"Ficção Científica", "Aventura"},
			Duration: "2h 46min", Rating: 8.7, AgeRating: "14", Language: "Inglês",
			Director: "Denis Villeneuve", Cast: []string{"Timothée Chalamet", "Zendaya"},
			ReleaseDate: "2024-03-01", Description: "Paul Atreides se une a Chani e aos Fremen.",
		},
		{
			ID: "m2", Title: "Divertida Mente 2", Genres: []string{"Animação", "Família"},
			Duration: "1h 36min", Rating: 7.9, AgeRating: "L", Language: "Português",
			Director: "Kelsey Mann", Cast: []string{"Amy Poehler", "Maya Hawke"},
			ReleaseDate: "2024-06-20", Description: "Novas emoções chegam à mente de Riley.",
		},
	}
	showtimes := []Showtime{
		{ID: "st1", MovieID: "m1", Date: "2025-11-14", Time: "19:30", Screen: "Sala 1", ScreenType: ScreenIMAX, Price: 12, AvailableSeats: 140},
		{ID: "st2", MovieID: "m1", Date: "2025-11-14", Time: "22:15", Screen: "Sala 2", ScreenType: ScreenStandard, Price: 12, AvailableSeats: 140},
		{ID: "st3", MovieID: "m2", Date: "2025-11-15", Time: "11:00", Screen: "Sala 3", ScreenType: Screen3D, Price: 12, AvailableSeats: 140},
		{ID: "st4", MovieID: "m2", Date: "2025-11-15", Time: "16:45", Screen: "Sala 4", ScreenType: Screen4DX, Price: 12, AvailableSeats: 140},
	}
	return movies, showtimes
}
