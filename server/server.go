package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/spf13/viper"

	"github.com/safespeak/safespeak/server/auth"
	"github.com/safespeak/safespeak/server/auth/key"
	"github.com/safespeak/safespeak/server/contacts"
	"github.com/safespeak/safespeak/server/gstorage"
	"github.com/safespeak/safespeak/server/invite"
	"github.com/safespeak/safespeak/server/logger"
	"github.com/safespeak/safespeak/server/mailer"
	"github.com/safespeak/safespeak/server/models"
	"github.com/safespeak/safespeak/server/push"
	"github.com/safespeak/safespeak/server/sos"
	"github.com/safespeak/safespeak/server/toxicity"
	"github.com/safespeak/safespeak/server/twilio"
	"github.com/safespeak/safespeak/server/work"
	"github.com/safespeak/safespeak/shared"
)

type RequestContextKey string

type DecodedJWT struct {
	Claims   *auth.SafespeakTokenClaims
	ErrorMsg string
}

var (
	logg     = logger.NewLogger()
	validate = validator.New()

	serverConfig   *shared.ServerConfig
	dataDir        string
	authKeyPair    *key.KeyPair
	workerPool     *work.WorkerPoolAdapter
	sosEngine      *sos.Engine
	contactManager *contacts.Manager
	inviteChannel  *invite.Channel
	toxicityClient *toxicity.Client
	storageClient  *gstorage.GStorage
)

// Start wires every service together from the provided config and
// runs the http server until an interrupt or kill signal arrives.
func Start(config *viper.Viper, devMode bool) {
	var err error

	serverConfig = &shared.ServerConfig{}
	fatalOnError(config.Unmarshal(serverConfig))
	fatalOnError(RegisterValidators(validate))
	fatalOnError(validate.Struct(serverConfig))

	dataDir = dataDirectory(devMode)
	fatalOnError(models.AutoMigrate(serverConfig.Sqlite.PassPhrase, dataDir))

	authKeyPair, err = key.NewKeyPairFromRSAPrivateKeyPem([]byte(serverConfig.Safespeak.PrivateKeyPem))
	fatalOnError(err)

	dispatcher := push.NewDispatcher(push.NewFCMClient(serverConfig.Fcm))
	sosEngine = sos.NewEngine(dispatcher)

	workerPool = work.NewWorkerAdapter(serverConfig.Safespeak.Cron.TimeZone)
	contactManager = contacts.NewManager(dispatcher, workerPool)

	emailSender, err := mailer.NewMailer(serverConfig.Ses)
	fatalOnError(err)
	inviteChannel = invite.NewChannel(twilio.NewClient(serverConfig.Twilio), emailSender)
	toxicityClient = toxicity.NewClient(serverConfig.Perspective)

	if serverConfig.Google.Storage.EnableSqliteBackupAndSync {
		storageClient, err = gstorage.NewGStorage(serverConfig.Google.ApplicationCredentials)
		fatalOnError(err)
	}

	registerJobHandlers(workerPool)
	enqueueJobs(workerPool)
	workerPool.Start()

	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	router.Use(initialContextMiddleware)

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/signup", signUp).Methods("POST")
	router.HandleFunc("/login", logIn).Methods("POST")
	router.HandleFunc("/.well-known/jwks.json", jwks).Methods("GET")

	protectedRouter := router.PathPrefix("/users").Subrouter()
	protectedRouter.Use(protectedRouteMiddleware)
	protectedRouter.HandleFunc("/{uid:[0-9]+}", findUser).Methods("GET")
	protectedRouter.HandleFunc("/{uid:[0-9]+}", updateUser).Methods("PUT")
	protectedRouter.HandleFunc("/{uid:[0-9]+}", deleteUser).Methods("DELETE")
	protectedRouter.HandleFunc("/{uid:[0-9]+}/contacts", createContact).Methods("POST")
	protectedRouter.HandleFunc("/{uid:[0-9]+}/contacts", getContacts).Methods("GET")
	protectedRouter.HandleFunc("/{uid:[0-9]+}/contacts/{id:[0-9]+}", updateContact).Methods("PUT")
	protectedRouter.HandleFunc("/{uid:[0-9]+}/contacts/{id:[0-9]+}", deleteContact).Methods("DELETE")
	protectedRouter.HandleFunc("/{uid:[0-9]+}/sos", sendSOS).Methods("POST")
	protectedRouter.HandleFunc("/{uid:[0-9]+}/sos_events", listSOSEvents).Methods("GET")
	protectedRouter.HandleFunc("/{uid:[0-9]+}/reports", submitReport).Methods("POST")
	protectedRouter.HandleFunc("/{uid:[0-9]+}/toxicity", checkToxicity).Methods("POST")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(adminRouteMiddleware)
	adminRouter.HandleFunc("/reported-users", getUsersWithReports).Methods("GET")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%v", serverConfig.Safespeak.Listener.Port),
		Handler:      router,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  30 * time.Second,
	}

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	go serve(server)

	<-signalChannel
	cleanup(workerPool, server, serverConfig.Google.Storage.EnableSqliteBackupAndSync)
}
