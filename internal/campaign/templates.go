package campaign

import (
	"fmt"
	"html/template"
	"strings"
)

// mailData feeds the invite and reminder bodies.
type mailData struct {
	Title    string
	FormLink string
	OrgName  string
}

var inviteTmpl = template.Must(template.New("invite").Parse(`
<p>Prezados, <strong>{{.Title}}</strong>,</p>

<p>Em virtude da <strong>Reforma Tributária</strong> em andamento no Brasil, estamos atualizando nosso cadastro de fornecedores para garantir a conformidade com as novas exigências fiscais.</p>

<p>Solicitamos que preencha o formulário disponível no link abaixo com as informações atualizadas da sua empresa:</p>

<p style="text-align: center; margin: 20px 0;">
    <a href="{{.FormLink}}" style="background-color: #0078D4; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; display: inline-block; font-weight: bold;">Preencher Formulário</a>
</p>

<p>Contamos com sua colaboração para mantermos nossos registros atualizados.</p>

<p>Atenciosamente,<br>
<strong>{{.OrgName}}</strong></p>
`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`
<p>Prezados, <strong>{{.Title}}</strong>,</p>

<p>Este é um <strong>lembrete</strong> sobre a atualização cadastral solicitada anteriormente.</p>

<p>Até o momento, <strong>não identificamos sua resposta</strong> ao formulário de atualização de dados relacionado à Reforma Tributária.</p>

<p>Para facilitar, disponibilizamos novamente o link do formulário:</p>

<p style="text-align: center; margin: 20px 0;">
    <a href="{{.FormLink}}" style="background-color: #D83B01; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; display: inline-block; font-weight: bold;">Preencher Formulário Agora</a>
</p>

<p>Sua colaboração é fundamental para mantermos nosso cadastro em conformidade com as novas normas fiscais.</p>

<p>Atenciosamente,<br>
<strong>{{.OrgName}}</strong></p>

<hr style="margin-top: 30px; border: none; border-top: 1px solid #ccc;">

<p style="font-size: 12px; color: #666; font-style: italic;">
Se você já respondeu ao formulário, por favor desconsidere esta mensagem!
</p>
`))

func renderInvite(d mailData) (string, error) {
	var b strings.Builder
	if err := inviteTmpl.Execute(&b, d); err != nil {
		return "", fmt.Errorf("render invite: %w", err)
	}
	return b.String(), nil
}

func renderReminder(d mailData) (string, error) {
	var b strings.Builder
	if err := reminderTmpl.Execute(&b, d); err != nil {
		return "", fmt.Errorf("render reminder: %w", err)
	}
	return b.String(), nil
}
