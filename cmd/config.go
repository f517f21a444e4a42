package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// ShopLatitude/ShopLongitude locate the shop orders are picked up from.
	// The dispatch job offers each pending order to the online shopper
	// closest to this point.
	ShopLatitude  float64
	ShopLongitude float64
}
