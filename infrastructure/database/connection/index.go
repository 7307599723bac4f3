package connection

import (
	"lifex.health/infrastructure/database/connection/cache"
	"lifex.health/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
