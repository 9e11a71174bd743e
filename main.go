package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/remote/rest"
	"github.com/deepakSingh023/blogclient/service"
	"github.com/deepakSingh023/blogclient/session"
	"github.com/deepakSingh023/blogclient/state"
	"github.com/deepakSingh023/blogclient/storage/file"
	"github.com/deepakSingh023/blogclient/worker"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	devMode := os.Getenv("DEV_MODE") == "true"

	var logger *zap.Logger
	if devMode {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()
	log := logger.Sugar()

	baseURL := os.Getenv("BLOG_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	pageSize := 0
	if v := os.Getenv("BLOG_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid BLOG_PAGE_SIZE %q: %v", v, err)
		}
		pageSize = n
	}

	sessionStorage, err := file.NewFileSessionStorage(os.Getenv("BLOG_SESSION_FILE"))
	if err != nil {
		log.Fatalf("Failed to open session storage: %v", err)
	}
	sessionStore := session.NewStore(sessionStorage, log)

	blogAPI, err := rest.NewRESTBlogAPI(baseURL, sessionStore, pageSize, log)
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}

	svc, err := service.NewService(blogAPI, sessionStore, state.NewStore(), log)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	shutdownCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	if err := svc.Restore(shutdownCtx); err != nil {
		log.Warnf("Failed to restore session: %v", err)
	}

	if err := run(shutdownCtx, svc, log, os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, service.ErrAuthRequired):
			fmt.Fprintln(os.Stderr, "This action requires login: run `blogclient login` first")
		case errors.Is(err, service.ErrConfirmRequired):
			fmt.Fprintln(os.Stderr, "Destructive action: re-run with -yes to confirm")
		default:
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *service.Service, log *zap.SugaredLogger, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: blogclient <login|register|logout|whoami|feed|blog|comments|like|unlike|comment|uncomment|create-blog|delete-blog|profile|set-profile|search|user|user-blogs> [args]")
	}
	cmd, cmdArgs := args[0], args[1:]

	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(cmdArgs)
		sess, err := svc.Login(ctx, models.Credentials{Email: *email, Password: *password})
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", sess.User.Username)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		username := fs.String("username", "", "display name")
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(cmdArgs)
		sess, err := svc.Register(ctx, models.Credentials{Username: *username, Email: *email, Password: *password})
		if err != nil {
			return err
		}
		fmt.Printf("Registered as %s\n", sess.User.Username)

	case "logout":
		return svc.Logout(ctx)

	case "whoami":
		sess, ok := svc.Session.Current()
		if !ok {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("%s <%s>\n", sess.User.Username, sess.User.Email)

	case "feed":
		fs := flag.NewFlagSet("feed", flag.ExitOnError)
		pages := fs.Int("pages", 1, "number of pages to load")
		fs.Parse(cmdArgs)
		return showFeed(ctx, svc, log, state.FeedScope(), *pages)

	case "user-blogs":
		fs := flag.NewFlagSet("user-blogs", flag.ExitOnError)
		pages := fs.Int("pages", 1, "number of pages to load")
		fs.Parse(cmdArgs)
		if fs.NArg() < 1 {
			return errors.New("usage: blogclient user-blogs [-pages n] <userId>")
		}
		return showFeed(ctx, svc, log, state.UserBlogsScope(fs.Arg(0)), *pages)

	case "blog":
		if len(cmdArgs) < 1 {
			return errors.New("usage: blogclient blog <blogId>")
		}
		blog, err := svc.GetBlog(ctx, cmdArgs[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\nby %s · %d likes · %d comments\n\n%s\n", blog.Title, blog.Username, blog.Likes, blog.Comments, blog.Content)
		if err := svc.LoadFirst(ctx, state.CommentsScope(blog.Id)); err != nil {
			return err
		}
		for _, c := range svc.CommentItems(blog.Id) {
			fmt.Printf("  [%s] %s: %s\n", c.Id, c.Author, c.Content)
		}

	case "comments":
		fs := flag.NewFlagSet("comments", flag.ExitOnError)
		pages := fs.Int("pages", 1, "number of pages to load")
		fs.Parse(cmdArgs)
		if fs.NArg() < 1 {
			return errors.New("usage: blogclient comments [-pages n] <blogId>")
		}
		blogId := fs.Arg(0)
		scope := state.CommentsScope(blogId)
		if err := loadPages(ctx, svc, log, scope, *pages); err != nil {
			return err
		}
		for _, c := range svc.CommentItems(blogId) {
			fmt.Printf("[%s] %s: %s\n", c.Id, c.Author, c.Content)
		}

	case "like":
		if len(cmdArgs) < 1 {
			return errors.New("usage: blogclient like <blogId>")
		}
		if _, err := svc.GetBlog(ctx, cmdArgs[0]); err != nil {
			return err
		}
		return svc.Like(ctx, cmdArgs[0])

	case "unlike":
		if len(cmdArgs) < 1 {
			return errors.New("usage: blogclient unlike <blogId>")
		}
		if _, err := svc.GetBlog(ctx, cmdArgs[0]); err != nil {
			return err
		}
		return svc.Unlike(ctx, cmdArgs[0])

	case "comment":
		if len(cmdArgs) < 2 {
			return errors.New("usage: blogclient comment <blogId> <content>")
		}
		c, err := svc.AddComment(ctx, cmdArgs[0], strings.Join(cmdArgs[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("Comment %s added\n", c.Id)

	case "uncomment":
		fs := flag.NewFlagSet("uncomment", flag.ExitOnError)
		yes := fs.Bool("yes", false, "confirm deletion")
		fs.Parse(cmdArgs)
		if fs.NArg() < 2 {
			return errors.New("usage: blogclient uncomment [-yes] <blogId> <commentId>")
		}
		return svc.DeleteComment(ctx, fs.Arg(0), fs.Arg(1), *yes)

	case "create-blog":
		fs := flag.NewFlagSet("create-blog", flag.ExitOnError)
		title := fs.String("title", "", "blog title")
		content := fs.String("content", "", "blog body")
		tags := fs.String("tags", "", "comma-separated tags")
		imagePath := fs.String("image", "", "cover image file")
		fs.Parse(cmdArgs)
		draft := models.BlogDraft{Title: *title, Content: *content, Tags: splitTags(*tags)}
		if *imagePath != "" {
			b, err := os.ReadFile(*imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			draft.Image = b
			draft.ImageName = *imagePath
		}
		blog, err := svc.CreateBlog(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Printf("Created blog %s\n", blog.Id)

	case "delete-blog":
		fs := flag.NewFlagSet("delete-blog", flag.ExitOnError)
		yes := fs.Bool("yes", false, "confirm deletion")
		fs.Parse(cmdArgs)
		if fs.NArg() < 1 {
			return errors.New("usage: blogclient delete-blog [-yes] <blogId>")
		}
		return svc.DeleteBlog(ctx, fs.Arg(0), *yes)

	case "profile":
		fs := flag.NewFlagSet("profile", flag.ExitOnError)
		refresh := fs.Bool("refresh", false, "bypass the cached profile")
		fs.Parse(cmdArgs)
		p, err := svc.Profile(ctx, *refresh)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n%s\n", p.Username, p.Bio)

	case "set-profile":
		fs := flag.NewFlagSet("set-profile", flag.ExitOnError)
		bio := fs.String("bio", "", "profile bio")
		imagePath := fs.String("image", "", "profile picture file")
		fs.Parse(cmdArgs)
		update := models.ProfileUpdate{Bio: *bio}
		if *imagePath != "" {
			b, err := os.ReadFile(*imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			update.Image = b
			update.ImageName = *imagePath
		}
		p, err := svc.UpdateProfile(ctx, update)
		if err != nil {
			return err
		}
		fmt.Printf("Profile updated: %s\n", p.Username)

	case "search":
		if len(cmdArgs) < 1 {
			return errors.New("usage: blogclient search <query>")
		}
		results, err := svc.Search(ctx, strings.Join(cmdArgs, " "))
		if err != nil {
			return err
		}
		for _, b := range results {
			fmt.Printf("[%s] %s — %s\n", b.Id, b.Title, b.Username)
		}

	case "user":
		if len(cmdArgs) < 1 {
			return errors.New("usage: blogclient user <userId>")
		}
		info, err := svc.UserInfo(ctx, cmdArgs[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\n%s\n%d blogs\n", info.Username, info.Bio, info.BlogCount)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func showFeed(ctx context.Context, svc *service.Service, log *zap.SugaredLogger, scope state.Scope, pages int) error {
	if err := loadPages(ctx, svc, log, scope, pages); err != nil {
		return err
	}
	for _, b := range svc.FeedItems(scope) {
		liked := " "
		if b.LikedByMe {
			liked = "♥"
		}
		fmt.Printf("[%s] %s %s — %s (%d likes, %d comments)\n", b.Id, liked, b.Title, b.Username, b.Likes, b.Comments)
	}
	if !svc.HasMore(scope) {
		fmt.Println("-- end of feed --")
	}
	return nil
}

// loadPages fetches the first page directly, then drives the remaining
// pages through the trigger pump the way a scroll sentinel would.
func loadPages(ctx context.Context, svc *service.Service, log *zap.SugaredLogger, scope state.Scope, pages int) error {
	if err := svc.LoadFirst(ctx, scope); err != nil {
		return err
	}

	if pages <= 1 {
		return nil
	}

	pump := worker.NewLoadPump(svc, log)
	pumpCtx, stopPump := context.WithCancel(ctx)
	defer stopPump()
	go pump.Run(pumpCtx)

	for i := 1; i < pages && svc.HasMore(scope); i++ {
		before := countItems(svc, scope)
		pump.Trigger(scope)
		if err := waitSettled(ctx, svc, scope, before); err != nil {
			return err
		}
	}
	return nil
}

// waitSettled polls until the triggered load landed: the window grew,
// the collection ended, or the in-flight flag stayed clear long enough
// to conclude the load failed (failures keep the window unchanged).
func waitSettled(ctx context.Context, svc *service.Service, scope state.Scope, before int) error {
	idle := 0
	deadline := time.Now().Add(time.Minute)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
		if svc.State.Loading(scope) {
			idle = 0
			continue
		}
		if countItems(svc, scope) != before || !svc.HasMore(scope) {
			return nil
		}
		if idle++; idle >= 10 {
			return nil
		}
	}
	return errors.New("timed out waiting for page load")
}

func countItems(svc *service.Service, scope state.Scope) int {
	if scope.Kind == state.ScopeComments {
		return len(svc.CommentItems(scope.Key))
	}
	return len(svc.FeedItems(scope))
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
