package notify

const cvTemplate = `
<div style="font-family: Arial, sans-serif; background-color: #f9fafb; padding: 20px;">
  <table role="presentation" style="max-width: 600px; margin: auto; background: white; border-radius: 16px; overflow: hidden; box-shadow: 0 2px 10px rgba(0,0,0,0.08);">
    <tr>
      <td style="padding: 24px; text-align: center;">
        <h2 style="font-size: 24px; font-weight: bold; margin: 0 0 12px; color: #111827;">¡Hola! 👋</h2>
        <p style="color: #374151; font-size: 16px; margin-bottom: 20px;">Gracias por tu interés en mi perfil profesional.</p>
        <p style="color: #6b7280; font-size: 14px; margin-bottom: 20px;">
          Te comparto mi hoja de vida en el archivo adjunto.
          No dudes en escribirme si necesitas más información.
        </p>
      </td>
    </tr>
    <tr>
      <td style="padding: 16px; text-align: center; border-top: 1px solid #e5e7eb;">
        <p style="font-size: 12px; color: #9ca3af; margin: 0;">📩 Este correo fue enviado automáticamente. Si tienes dudas, responde a este mensaje.</p>
      </td>
    </tr>
  </table>
</div>
`
