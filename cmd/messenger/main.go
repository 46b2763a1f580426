package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"messenger/domain"
	"messenger/ident"
	"messenger/internal"
	"messenger/repositories"
	"messenger/search"
	"messenger/services"
	"messenger/storage"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Messenger terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes storage, the store and the services, then hands control to
// the interactive loop. Keeping the logic out of main() ensures deferred
// cleanup (database close, index close) executes on every exit path.
func run() (int, error) {
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()
	debug := logger.Enabled(ctx, slog.LevelDebug)

	// A denied or unwritable storage location must not kill the application:
	// it degrades to an in-memory session with no persistence.
	var kv storage.KV
	db, err := badger.Open(storage.Options(config.BadgerFilepath, debug))
	if err != nil {
		logger.Warn("BadgerDB unavailable, falling back to in-memory storage", "error", err)
		kv = storage.NewMemoryKV()
	} else {
		defer func() {
			logger.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
		kv = storage.NewBadgerKV(db, logger)
	}

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		logger.Warn("Bluge index unavailable on disk, using in-memory index", "error", err)
		blugeWriter, err = bluge.OpenWriter(bluge.InMemoryOnlyConfig())
		if err != nil {
			return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
		}
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	store := repositories.NewEntityStore(kv, ident.UUID{}, time.Now, logger)
	users, _, _ := store.LoadAll()

	index := search.NewContactIndex(blugeWriter, logger, config.SearchLimit)
	if err := index.Rebuild(users); err != nil {
		logger.Warn("Contact index rebuild failed, search degraded", "error", err)
	}

	app := &app{
		auth: services.NewAuthService(store, index, logger),
		chat: services.NewChatService(store, index, logger),
		log:  logger,
	}
	app.loop(ctx, bufio.NewScanner(os.Stdin))
	return exitOK, nil
}

type app struct {
	auth services.IAuthService
	chat services.IChatService
	log  *slog.Logger

	// Chats as last rendered, so "open N" can address them by row number.
	rendered []services.ChatView
}

func (a *app) loop(ctx context.Context, in *bufio.Scanner) {
	color.Info.Println("ChatApp — type 'help' for commands")
	if current := a.auth.Current(); current != nil {
		color.Success.Printf("С возвращением, %s!\n", current.Name)
		a.list()
	}

	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(in.Text()), " ")
		switch cmd {
		case "":
		case "help":
			printHelp()
		case "register":
			a.register(in)
		case "login":
			a.login(in)
		case "logout":
			a.logout()
		case "add":
			a.addContact(arg)
		case "list":
			a.list()
		case "search":
			a.search(ctx, arg)
		case "open":
			a.open(arg, in)
		case "quit", "exit":
			return
		default:
			color.Error.Printf("Unknown command %q\n", cmd)
		}
	}
}

func (a *app) register(in *bufio.Scanner) {
	name := prompt(in, "Имя: ")
	phone := prompt(in, "Номер телефона: ")
	password := prompt(in, "Пароль: ")

	user, err := a.auth.Register(name, phone, password)
	if err != nil {
		color.Error.Println(userMessage(err))
		return
	}
	color.Success.Println("Регистрация прошла успешно!")
	renderAvatar(user)
}

func (a *app) login(in *bufio.Scanner) {
	phone := prompt(in, "Номер телефона: ")
	password := prompt(in, "Пароль: ")

	user, err := a.auth.Login(phone, password)
	if err != nil {
		color.Error.Println(userMessage(err))
		return
	}
	color.Success.Printf("Вход выполнен успешно! Привет, %s\n", user.Name)
	a.list()
}

func (a *app) logout() {
	if err := a.auth.Logout(); err != nil {
		color.Error.Println(userMessage(err))
		return
	}
	a.rendered = nil
	color.Info.Println("Вы вышли из аккаунта")
}

func (a *app) addContact(phone string) {
	self, ok := a.requireSession()
	if !ok {
		return
	}
	view, err := a.chat.AddContact(self, phone)
	if err != nil {
		color.Error.Println(userMessage(err))
		return
	}
	color.Success.Printf("Чат с %s готов\n", view.Other.Name)
	a.list()
}

func (a *app) list() {
	self, ok := a.requireSession()
	if !ok {
		return
	}
	a.rendered = a.chat.ListChats(self)
	renderChats(a.rendered, time.Now())
}

func (a *app) search(ctx context.Context, query string) {
	self, ok := a.requireSession()
	if !ok {
		return
	}
	views, err := a.chat.SearchChats(ctx, self, query)
	if err != nil {
		a.log.Warn("Search failed", "query", query, "error", err)
		color.Error.Println("Поиск временно недоступен")
		return
	}
	a.rendered = views
	renderChats(a.rendered, time.Now())
}

func (a *app) open(arg string, in *bufio.Scanner) {
	if _, ok := a.requireSession(); !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(a.rendered) {
		color.Error.Println("Укажите номер чата из списка, например: open 1")
		return
	}
	renderChatWindow(a.rendered[n-1], in)
}

func (a *app) requireSession() (domain.User, bool) {
	current := a.auth.Current()
	if current == nil {
		color.Error.Println("Сначала войдите в аккаунт (login) или зарегистрируйтесь (register)")
		return domain.User{}, false
	}
	return *current, true
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return in.Text()
}

func printHelp() {
	fmt.Println(`Commands:
  register          create an account
  login             sign in by phone and password
  logout            end the session
  add <phone>       add a contact and open a chat with it
  list              show your chats
  search <query>    filter chats by contact name or phone
  open <n>          open chat number n from the last list
  quit              exit`)
}
