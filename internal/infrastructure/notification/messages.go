package notification

import "fmt"

// Email builders for the transactional messages the admin backend sends.
// Bodies stay plain text; the donor-facing templates live in the frontend.

func ApplicationApproved(to, npoName, dashboardURL string) Email {
	return Email{
		To:      to,
		Kind:    "npo_application_approved",
		Subject: fmt.Sprintf("NPO Application Approved: %s", npoName),
		Body: fmt.Sprintf(
			"Congratulations! Your application for %s has been approved.\n\n"+
				"Your organization is now active on Augeo Platform. Visit your dashboard to get started:\n%s\n\n"+
				"Best regards,\nThe Augeo Platform Team",
			npoName, dashboardURL),
	}
}

func ApplicationRejected(to, npoName, reason string) Email {
	reasonText := ""
	if reason != "" {
		reasonText = fmt.Sprintf("\n\nReason:\n%s\n", reason)
	}
	return Email{
		To:      to,
		Kind:    "npo_application_rejected",
		Subject: fmt.Sprintf("NPO Application Status: %s", npoName),
		Body: fmt.Sprintf(
			"Thank you for your interest in joining Augeo Platform with %s.\n\n"+
				"After careful review, we're unable to approve your application at this time.%s\n"+
				"You may submit a new application in the future.\n\n"+
				"Best regards,\nThe Augeo Platform Team",
			npoName, reasonText),
	}
}

func MemberInvitation(to, npoName, role, invitationURL string) Email {
	return Email{
		To:      to,
		Kind:    "npo_invitation",
		Subject: fmt.Sprintf("Invitation to Join %s - Augeo Platform", npoName),
		Body: fmt.Sprintf(
			"%s has invited you to join their organization on Augeo Platform as a %s.\n\n"+
				"Click the link below to accept the invitation:\n%s\n\n"+
				"This invitation will expire in 7 days.\n\n"+
				"Best regards,\nThe Augeo Platform Team",
			npoName, role, invitationURL),
	}
}

func InvitationAccepted(to, npoName, memberName, role string) Email {
	return Email{
		To:      to,
		Kind:    "npo_invitation_accepted",
		Subject: fmt.Sprintf("Team Member Joined: %s", npoName),
		Body: fmt.Sprintf(
			"Good news! %s has accepted your invitation to join %s as a %s.\n\n"+
				"Best regards,\nThe Augeo Platform Team",
			memberName, npoName, role),
	}
}
