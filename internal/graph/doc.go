// Package graph is a small Microsoft Graph client covering the two calls
// the desk makes: downloading a file from the agency's SharePoint site and
// sending mail from a staff mailbox.
//
// Authentication uses the OAuth2 client-credentials grant, either with a
// client secret or with a certificate: in that case every token request
// carries a fresh client assertion, an RS256 JWT whose x5t header is the
// certificate's SHA-1 thumbprint.
//
//	c, err := graph.New(ctx, cfg)
//	data, err := c.Download(ctx, "GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx")
//	err = c.SendMail(ctx, "idir.hadjhamou@study-success.fr", msg)
package graph
