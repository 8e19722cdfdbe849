// Package drive fetches the agency's working files (workbooks, the mandat
// PDF, the profile deck template, profile result PDFs) from where the team
// keeps them: the SharePoint document library through Microsoft Graph, an S3
// bucket, or a local directory.
//
// Paths are relative to the drive root and use forward slashes, for example
// "GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx".
package drive
