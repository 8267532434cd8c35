package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/mentorlink/cmd/mentord/handlers"
	kcf "github.com/mentorlink/mentorlink/pkg/configs/server"
	kassign "github.com/mentorlink/mentorlink/pkg/domain/assignment/db"
	kpg "github.com/mentorlink/mentorlink/pkg/domain/mentorlink/db/postgres"
	"github.com/mentorlink/mentorlink/pkg/hub"
	"github.com/mentorlink/mentorlink/pkg/utils/echoutil"
	"github.com/mentorlink/mentorlink/pkg/utils/filewatch"
	"github.com/mentorlink/mentorlink/pkg/welcome"
)

func main() {

	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf, err := kcf.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	{
		// restart (via the process supervisor) when the config changes.
		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			log.Println("config file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by config update: %s", err)
			}
		})
	}

	var hubOptions []hub.Option
	if 0 < conf.SubscriptionBuffer {
		hubOptions = append(hubOptions, hub.WithBuffer(conf.SubscriptionBuffer))
	}
	h := hub.New(hubOptions...)

	// get dbaccesor.
	//
	// The group-room greeting hook needs the database's own message store,
	// so it is bound after New via the indirection below. Assign runs no
	// hooks before the server starts serving.
	var groupHook kassign.PostCommitHook
	ctx := context.Background()
	db, err := kpg.New(
		ctx, conf.DBURI,
		kpg.WithEnsureSchema(),
		kpg.WithPostCommitHook(func(ctx context.Context, ev kassign.ProvisioningEvent) {
			if groupHook != nil {
				groupHook(ctx, ev)
			}
		}),
	)
	if err != nil {
		log.Fatalf("can not connect database: %s", err)
	}
	defer db.Close()
	groupHook = welcome.GroupRoomHook(db.Message(), h, log.Default())

	// handlers
	{
		e.POST("/api/users", handlers.RegisterUserHandler(db.User()))
		e.GET("/api/users/:userId", handlers.GetUserHandler(db.User(), "userId"))
		e.GET("/api/users/:userId/rooms", handlers.ListRoomsHandler(db.Room(), "userId"))
	}

	{
		e.POST("/api/assignments", handlers.AssignMentorHandler(db.Assignment()))
		e.GET(
			"/api/students/:studentId/assignments",
			handlers.GetAssignmentsHandler(db.Assignment(), "studentId"),
		)
		e.DELETE(
			"/api/students/:studentId/assignments/:role",
			handlers.UnassignMentorHandler(db.Assignment(), "studentId", "role"),
		)
		e.DELETE(
			"/api/students/:studentId",
			handlers.OffboardStudentHandler(db.Assignment(), "studentId"),
		)
	}

	{
		e.POST("/api/rooms/private", handlers.EnsurePrivateRoomHandler(db.Room()))
		e.GET("/api/rooms/:roomId", handlers.GetRoomHandler(db.Room(), "roomId"))
		e.DELETE(
			"/api/rooms/:roomId/participants/:userId",
			handlers.LeaveRoomHandler(db.Room(), "roomId", "userId"),
		)
		e.GET(
			"/api/rooms/:roomId/subscribe",
			handlers.SubscribeRoomHandler(db.Room(), h, "roomId"),
		)
	}

	{
		e.POST(
			"/api/rooms/:roomId/messages",
			handlers.SendMessageHandler(db.Message(), h, "roomId"),
		)
		e.GET(
			"/api/rooms/:roomId/messages",
			handlers.ListMessagesHandler(db.Message(), "roomId"),
		)
		e.PUT(
			"/api/rooms/:roomId/read",
			handlers.MarkAsReadHandler(db.Message(), h, "roomId"),
		)
		e.PUT(
			"/api/messages/:messageId",
			handlers.EditMessageHandler(db.Message(), h, "messageId"),
		)
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.ServerPort, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.ServerPort))
	}
}
