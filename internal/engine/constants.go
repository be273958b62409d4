package engine

const (
	// FoodPerWorker is what every worker in every pool eats per tick,
	// whether or not it is assigned
	FoodPerWorker = 1.0
)
