package notify

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

var contactText = texttemplate.Must(texttemplate.New("contact").Parse(`Name: {{.Name}}
Email: {{.Email}}
Subject: {{.Subject}}

Message:
{{.Body}}
`))

var contactHTML = htmltemplate.Must(htmltemplate.New("contact").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #2563eb;">New Contact Form Submission</h2>
	<div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
		<p><strong>Name:</strong> {{.Name}}</p>
		<p><strong>Email:</strong> {{.Email}}</p>
		<p><strong>Subject:</strong> {{.Subject}}</p>
	</div>
	<div style="background-color: #ffffff; padding: 20px; border: 1px solid #e2e8f0; border-radius: 8px;">
		<h3 style="color: #374151; margin-top: 0;">Message:</h3>
		<p style="line-height: 1.6; color: #4b5563;">{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
	</div>
	<div style="margin-top: 20px; padding: 15px; background-color: #eff6ff; border-radius: 8px;">
		<p style="margin: 0; font-size: 14px; color: #1e40af;">
			This message was sent from your portfolio contact form.
		</p>
	</div>
</div>
`))

var welcomeText = texttemplate.Must(texttemplate.New("welcome").Parse(`Welcome to {{.SiteName}}!

Thank you for subscribing to my quarterly newsletter. You'll receive creative insights, behind-the-scenes stories, and updates from my artistic journey.

What to expect:
• Quarterly creative updates and reflections
• Behind-the-scenes stories from my projects
• Insights on the intersection of tech and media
• Personal stories from my creative journey

I'm excited to share this journey with you!

Best regards,
{{.Author}}

---
You're receiving this because you subscribed to {{.SiteName}} at {{.SiteURL}}
To unsubscribe, reply with "UNSUBSCRIBE"
`))

var welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="text-align: center; margin-bottom: 30px;">
		<h1 style="color: #2563eb; margin: 0;">Welcome to {{.SiteName}}! 🎨</h1>
	</div>
	<div style="background-color: #f8fafc; padding: 30px; border-radius: 12px; margin-bottom: 30px;">
		<p style="font-size: 18px; line-height: 1.6; margin: 0 0 20px 0;">
			Thank you for subscribing to my quarterly newsletter. You'll receive creative insights,
			behind-the-scenes stories, and updates from my artistic journey.
		</p>
	</div>
	<div style="margin-bottom: 30px;">
		<h3 style="color: #374151; margin-bottom: 15px;">What to expect:</h3>
		<ul style="line-height: 1.8; color: #4b5563;">
			<li>Quarterly creative updates and reflections</li>
			<li>Behind-the-scenes stories from my projects</li>
			<li>Insights on the intersection of tech and media</li>
			<li>Personal stories from my creative journey</li>
		</ul>
	</div>
	<div style="background-color: #eff6ff; padding: 20px; border-radius: 8px; margin-bottom: 30px;">
		<p style="margin: 0; color: #1e40af; font-weight: 500;">
			I'm excited to share this journey with you!
		</p>
	</div>
	<div style="text-align: center; margin-bottom: 30px;">
		<p style="font-size: 16px; margin: 0;">
			Best regards,<br>
			<strong>{{.Author}}</strong>
		</p>
	</div>
	<div style="border-top: 1px solid #e5e7eb; padding-top: 20px; text-align: center;">
		<p style="font-size: 12px; color: #6b7280; margin: 0;">
			You're receiving this because you subscribed to {{.SiteName}} at {{.SiteURL}}<br>
			To unsubscribe, reply with "UNSUBSCRIBE"
		</p>
	</div>
</div>
`))

var subscriptionText = texttemplate.Must(texttemplate.New("subscription").Parse(`New subscriber to {{.SiteName}} newsletter:

Email: {{.Email}}
Subscribed at: {{.SubscribedAt}}

This subscriber has been sent a welcome email automatically.
`))

var subscriptionHTML = htmltemplate.Must(htmltemplate.New("subscription").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #2563eb;">New {{.SiteName}} Subscriber</h2>
	<div style="background-color: #f8fafc; padding: 20px; border-radius: 8px;">
		<p><strong>Email:</strong> {{.Email}}</p>
		<p><strong>Subscribed at:</strong> {{.SubscribedAt}}</p>
	</div>
	<p style="margin-top: 20px; color: #4b5563;">
		This subscriber has been sent a welcome email automatically.
	</p>
</div>
`))
