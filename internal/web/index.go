package web

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

// indexPage is the static dashboard shell. It holds no logic beyond calling
// the JSON endpoints and rendering their output.
const indexPage = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Resumen de entregas por fecha</title>
<style>
  body { font-family: sans-serif; margin: 2rem; max-width: 72rem; }
  table { border-collapse: collapse; margin: 1rem 0; width: 100%; }
  th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; font-size: 0.85rem; }
  th { background: #f2f2f2; text-align: left; }
  .controls { display: flex; gap: 1rem; align-items: center; flex-wrap: wrap; }
  .error { color: #b00020; }
  .muted { color: #666; }
</style>
</head>
<body>
<h1>&#128230; Resumen de entregas por fecha de entrega</h1>
<div class="controls">
  <button id="load">1&#65039;&#8419; Cargar datos desde API</button>
  <a href="/api/export" download>&#128190; Descargar datos (CSV)</a>
  <label>Fecha de entrega <input type="date" id="date"></label>
  <label>D&iacute;as hacia atr&aacute;s <input type="number" id="window" min="1" value="3"></label>
</div>
<p id="status" class="muted"></p>
<div id="summary"></div>
<h2>&#128203; Detalle de env&iacute;os</h2>
<div id="table"></div>
<script>
const status = document.getElementById('status');
const dateInput = document.getElementById('date');
const windowInput = document.getElementById('window');

const yesterday = new Date(Date.now() - 86400000);
dateInput.value = yesterday.toISOString().slice(0, 10);

async function call(url, opts) {
  const res = await fetch(url, opts);
  const body = await res.json();
  if (!res.ok) throw new Error(body.error || res.statusText);
  return body;
}

function renderTable(columns, rows) {
  const head = '<tr>' + columns.map(c => '<th>' + c + '</th>').join('') + '</tr>';
  const body = rows.map(r => '<tr>' + r.map(v => '<td>' + v + '</td>').join('') + '</tr>').join('');
  return '<table>' + head + body + '</table>';
}

function renderFigures(title, f) {
  const carriers = f.carriers.length
    ? renderTable(
        ['Paquetería', 'Entregas', 'Horas prom.', 'Días prom.', 'Incidencias', '% incidencias'],
        f.carriers.map(c => [c.carrier, c.count, c.avg_lead_time_hours ?? 'N/D', c.avg_lead_time_days ?? 'N/D', c.incidence_count, c.incidence_rate_pct]))
    : '<p class="muted">Sin datos para agrupar por paquetería.</p>';
  return '<h3>' + title + '</h3>'
    + '<p>Cantidad entregada: <b>' + f.count + '</b><br>'
    + 'Tiempo promedio de entrega: <b>' + f.avg_lead_time + '</b><br>'
    + 'Total de incidencias: <b>' + f.incidence_count + '</b><br>'
    + 'Porcentaje de incidencias: <b>' + f.incidence_rate + '</b></p>'
    + carriers;
}

async function refresh() {
  const date = dateInput.value, win = windowInput.value;
  try {
    const s = await call('/api/summary?date=' + date + '&window=' + win);
    document.getElementById('summary').innerHTML =
      renderFigures('Resumen ' + s.date, s.selected) +
      renderFigures('Resumen últimos ' + s.window_days + ' días', s.window);
    const t = await call('/api/table?date=' + date);
    document.getElementById('table').innerHTML = t.count
      ? renderTable(t.columns, t.rows)
      : '<p class="muted">No se encontraron registros para esa fecha.</p>';
    status.textContent = '';
  } catch (err) {
    status.textContent = err.message;
    status.className = 'error';
  }
}

document.getElementById('load').onclick = async () => {
  status.className = 'muted';
  status.textContent = 'Llamando al API y cargando datos...';
  try {
    const r = await call('/api/load', { method: 'POST' });
    status.textContent = 'Datos cargados. Registros totales: ' + r.records;
    await refresh();
  } catch (err) {
    status.textContent = err.message;
    status.className = 'error';
  }
};
dateInput.onchange = refresh;
windowInput.onchange = refresh;
</script>
</body>
</html>
`
