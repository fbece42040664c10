/* db_container.go
 * Contains DBContainer, a throwaway mongo instance for integration tests
 * Authors: Zachary Bower
 */

package containers

import (
	"context"
	"log"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
)

const image = "mongo:7"

type DBContainer struct {
	container *mongodb.MongoDBContainer
}

// NewDBContainer starts a mongo container. Requires a running docker daemon.
func NewDBContainer() *DBContainer {
	container, err := mongodb.Run(context.Background(), image,
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("Waiting for connections"),
				wait.ForListeningPort("27017/tcp"),
			).WithStartupTimeoutDefault(30*time.Second)),
	)
	if err != nil {
		log.Fatalf("error starting container: %v", err)
	}

	return &DBContainer{
		container: container,
	}
}

func (c *DBContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatalf("error terminating container: %v", err)
	}
}

func (c *DBContainer) ConnectionString() string {
	connStr, err := c.container.ConnectionString(context.Background())
	if err != nil {
		log.Fatalf("error getting connection string: %v", err)
	}
	return connStr
}
