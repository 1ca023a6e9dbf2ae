package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

const (
	CategoryContact      = "contact"
	CategoryWelcome      = "newsletter_welcome"
	CategorySubscription = "newsletter_notification"

	subscribedAtLayout = "January 2, 2006 at 3:04 PM MST"
)

// Composer renders the transactional emails of the site.
type Composer struct {
	// From is the verified sender address.
	From string
	// Owner receives contact requests and subscription notices.
	Owner    string
	SiteName string
	Author   string
	SiteURL  string
	Now      func() time.Time
}

type (
	contactData struct {
		Name    string
		Email   string
		Subject string
		Lines   []string
		Body    string
	}

	welcomeData struct {
		SiteName string
		Author   string
		SiteURL  string
	}

	subscriptionData struct {
		SiteName     string
		Email        string
		SubscribedAt string
	}
)

// Contact builds the message forwarded to the owner for a contact form submission.
func (c *Composer) Contact(name, email, subject, body string) (Message, error) {
	data := contactData{
		Name:    name,
		Email:   email,
		Subject: subject,
		Lines:   strings.Split(body, "\n"),
		Body:    body,
	}
	return c.render(Message{
		To:       c.Owner,
		From:     c.From,
		ReplyTo:  email,
		Subject:  "Portfolio Contact: " + subject,
		Category: CategoryContact,
	}, contactText, contactHTML, data)
}

// Welcome builds the greeting sent to a new newsletter subscriber.
func (c *Composer) Welcome(email string) (Message, error) {
	data := welcomeData{SiteName: c.SiteName, Author: c.Author, SiteURL: c.SiteURL}
	return c.render(Message{
		To:       email,
		From:     c.From,
		ReplyTo:  email,
		Subject:  fmt.Sprintf("Welcome to %s! 🎨", c.SiteName),
		Category: CategoryWelcome,
	}, welcomeText, welcomeHTML, data)
}

// Subscription builds the notice telling the owner about a new subscriber.
func (c *Composer) Subscription(email string) (Message, error) {
	data := subscriptionData{
		SiteName:     c.SiteName,
		Email:        email,
		SubscribedAt: c.now().Format(subscribedAtLayout),
	}
	return c.render(Message{
		To:       c.Owner,
		From:     c.From,
		ReplyTo:  email,
		Subject:  fmt.Sprintf("New %s Subscriber", c.SiteName),
		Category: CategorySubscription,
	}, subscriptionText, subscriptionHTML, data)
}

func (c *Composer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Composer) render(msg Message, text *texttemplate.Template, html *htmltemplate.Template, data any) (Message, error) {
	var buf bytes.Buffer
	if err := text.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render %s text: %w", msg.Category, err)
	}
	msg.Text = buf.String()

	buf.Reset()
	if err := html.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", msg.Category, err)
	}
	msg.HTML = buf.String()
	return msg, nil
}
